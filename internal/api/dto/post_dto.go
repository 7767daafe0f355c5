package dto

import "time"

// PostDTO 帖子详情
type PostDTO struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ReadCount   int64      `json:"read_count"`
	LikeCount   int64      `json:"like_count"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Author   *ProfileBriefDTO `json:"author,omitempty" copier:"-"`
	Tags     []*TagDTO        `json:"tags" copier:"-"`
	Comments []*CommentDTO    `json:"comments,omitempty" copier:"-"`
}

// PostSummaryDTO 列表中的帖子，不含正文
type PostSummaryDTO struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ReadCount   int64      `json:"read_count"`
	LikeCount   int64      `json:"like_count"`
	CreatedAt   time.Time  `json:"created_at"`

	Author *ProfileBriefDTO `json:"author,omitempty" copier:"-"`
	Tags   []*TagDTO        `json:"tags" copier:"-"`
}

// CreatePostDTO 新建帖子，slug 为空时由标题生成
type CreatePostDTO struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Excerpt *string  `json:"excerpt" validate:"omitempty,max=500"`
	Slug    string   `json:"slug" validate:"omitempty,max=200"`
	Tags    []string `json:"tags" validate:"max=10,dive,max=50"`
}

// UpdatePostDTO 部分更新，缺省字段不修改
type UpdatePostDTO struct {
	Title   *string `json:"title"`
	Slug    *string `json:"slug" validate:"omitempty,max=200"`
	Content *string `json:"content"`
	Excerpt *string `json:"excerpt" validate:"omitempty,max=500"`
}

// LikeStateDTO 点赞状态
type LikeStateDTO struct {
	Liked bool `json:"liked"`
}
