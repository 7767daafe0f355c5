package model

import (
	"time"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

type Post struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	AuthorID    string     `gorm:"type:char(36);not null;index:idx_author_id" json:"author_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_slug" json:"slug"`
	Content     string     `gorm:"type:mediumtext;not null" json:"content"`
	Excerpt     *string    `gorm:"type:varchar(500)" json:"excerpt,omitempty"`
	Status      string     `gorm:"type:varchar(16);not null;default:draft;index:idx_status_published" json:"status"`
	PublishedAt *time.Time `gorm:"index:idx_status_published" json:"published_at,omitempty"`
	ReadCount   int64      `gorm:"not null;default:0" json:"read_count"`
	LikeCount   int64      `gorm:"not null;default:0" json:"like_count"`
	Version     int        `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 关联关系
	Author   *Profile  `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Tags     []Tag     `gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID" json:"tags,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID;references:ID" json:"comments,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// IsPublished 已发布的帖子不可直接编辑
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// PostPatch 帖子的部分更新，nil 字段表示不修改
type PostPatch struct {
	Title       *string
	Slug        *string
	Content     *string
	Excerpt     *string
	Status      *string
	PublishedAt *time.Time
}

// Fields 返回被修改的字段名，顺序固定
func (p *PostPatch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Slug != nil {
		fields = append(fields, "slug")
	}
	if p.Content != nil {
		fields = append(fields, "content")
	}
	if p.Excerpt != nil {
		fields = append(fields, "excerpt")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.PublishedAt != nil {
		fields = append(fields, "published_at")
	}
	return fields
}
