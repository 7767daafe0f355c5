package model

import (
	"time"
)

type Like struct {
	PostID    string    `gorm:"type:char(36);primaryKey" json:"post_id"`
	UserID    string    `gorm:"type:char(36);primaryKey;index:idx_user_id" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
