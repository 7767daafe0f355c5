package model

import (
	"time"
)

type Comment struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	PostID    string    `gorm:"type:char(36);not null;index:idx_post_id" json:"post_id"`
	AuthorID  string    `gorm:"type:char(36);not null" json:"author_id"`
	ParentID  *string   `gorm:"type:char(36);index:idx_parent_id" json:"parent_id,omitempty"` // nil 表示直接评论帖子
	Content   string    `gorm:"type:varchar(5000);not null" json:"content"`
	LikeCount int64     `gorm:"not null;default:0" json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author  *Profile  `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Replies []Comment `gorm:"foreignKey:ParentID;references:ID" json:"replies,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
