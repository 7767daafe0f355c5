package dto

// Response 统一返回结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageDTO 分页参数
type PageDTO struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// ListDTO 列表返回
type ListDTO[T any] struct {
	List     []T `json:"list"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
