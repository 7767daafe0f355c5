package dto

import "time"

type CommentDTO struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author  *ProfileBriefDTO `json:"author,omitempty" copier:"-"`
	Replies []*CommentDTO    `json:"replies,omitempty" copier:"-"`
}

type CreateCommentDTO struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

type UpdateCommentDTO struct {
	Content string `json:"content"`
}
