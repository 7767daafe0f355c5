package dto

// AuditLogQueryDTO 审计日志查询条件
type AuditLogQueryDTO struct {
	UserID     string `form:"user_id" validate:"omitempty,uuid"`
	ResourceID string `form:"resource_id" validate:"omitempty,max=64"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=500"`
}
