package model

type PostTag struct {
	PostID string `gorm:"type:char(36);primaryKey" json:"post_id"`
	TagID  string `gorm:"type:char(36);primaryKey;index:idx_tag_id" json:"tag_id"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
