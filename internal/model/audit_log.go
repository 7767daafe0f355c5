package model

import (
	"time"
)

const (
	AuditActionRead    = "read"
	AuditActionCreate  = "create"
	AuditActionUpdate  = "update"
	AuditActionPublish = "publish"
	AuditActionArchive = "archive"
	AuditActionDelete  = "delete"
)

const (
	AuditResourcePost    = "post"
	AuditResourceComment = "comment"
	AuditResourceProfile = "profile"
)

// AuditLog 只追加的操作记录
type AuditLog struct {
	ID         string         `gorm:"type:char(36);primaryKey" json:"id" bson:"_id"`
	UserID     string         `gorm:"type:char(36);not null;index:idx_user_id" json:"user_id" bson:"user_id"`
	Action     string         `gorm:"type:varchar(32);not null" json:"action" bson:"action"`
	Resource   string         `gorm:"type:varchar(32);not null" json:"resource" bson:"resource"`
	ResourceID string         `gorm:"type:varchar(64);not null;index:idx_resource" json:"resource_id" bson:"resource_id"`
	Details    map[string]any `gorm:"type:json;serializer:json" json:"details,omitempty" bson:"details,omitempty"`
	IPAddress  string         `gorm:"type:varchar(64)" json:"ip_address" bson:"ip_address"`
	UserAgent  string         `gorm:"type:varchar(512)" json:"user_agent" bson:"user_agent"`
	TraceID    string         `gorm:"type:varchar(64)" json:"trace_id" bson:"trace_id"`
	CreatedAt  time.Time      `gorm:"index:idx_created_at" json:"created_at" bson:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
