package dto

import "time"

// ProfileBriefDTO 作者信息
type ProfileBriefDTO struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// ProfileDTO 用户主页
type ProfileDTO struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`

	Posts []*PostSummaryDTO `json:"posts,omitempty" copier:"-"`
}

// CurrentProfileDTO 当前登录用户，附带权限标记
type CurrentProfileDTO struct {
	ProfileDTO
	CanPublish  bool `json:"can_publish"`
	IsModerator bool `json:"is_moderator"`
	IsAdmin     bool `json:"is_admin"`
}

// UpdateProfileDTO 只允许修改展示字段
type UpdateProfileDTO struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url,max=512"`
	Bio         *string `json:"bio" validate:"omitempty,max=1000"`
}

type UsernameAvailableDTO struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}
