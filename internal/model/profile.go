package model

import (
	"time"
)

type Profile struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Username    string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_username" json:"username"`
	DisplayName *string   `gorm:"type:varchar(100)" json:"display_name,omitempty"`
	AvatarURL   *string   `gorm:"type:varchar(512)" json:"avatar_url,omitempty"`
	Bio         *string   `gorm:"type:varchar(1000)" json:"bio,omitempty"`
	CanPublish  bool      `gorm:"type:tinyint(1);not null;default:0" json:"can_publish"`
	IsVerified  bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_verified"`
	IsModerator bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_moderator"`
	IsAdmin     bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:AuthorID;references:ID" json:"posts,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

// CanPublishPosts 发布需要同时具备发布权限与实名认证
func (p *Profile) CanPublishPosts() bool {
	return p.CanPublish && p.IsVerified
}

// CanModerate 版主或管理员
func (p *Profile) CanModerate() bool {
	return p.IsModerator || p.IsAdmin
}

// ProfilePatch 用户可自行修改的资料字段
type ProfilePatch struct {
	DisplayName *string
	AvatarURL   *string
	Bio         *string
}
