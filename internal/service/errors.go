package service

import (
	"errors"
	"strings"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrAccessDenied            = errors.New("Access denied")
	ErrRateLimited             = errors.New("Rate limit exceeded")
	ErrInsufficientPermissions = errors.New("Insufficient permissions to publish")
	ErrPostConflict            = errors.New("帖子已被修改，请刷新后重试")
	ErrPostNotFound            = errors.New("帖子不存在")
	ErrPostSlugExist           = errors.New("slug 已被使用")
	ErrCommentNotFound         = errors.New("评论不存在")
	ErrCommentParentInvalid    = errors.New("回复的评论不属于该帖子")
	ErrProfileNotFound         = errors.New("用户不存在")
	ErrUsernameInvalid         = errors.New("用户名不合法")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrAccessDenied:            Forbidden,
	ErrRateLimited:             TooManyRequests,
	ErrInsufficientPermissions: Forbidden,
	ErrPostConflict:            Conflict,
	ErrPostNotFound:            NotFound,
	ErrPostSlugExist:           BadRequest,
	ErrCommentNotFound:         NotFound,
	ErrCommentParentInvalid:    BadRequest,
	ErrProfileNotFound:         NotFound,
	ErrUsernameInvalid:         BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}

// ValidationError 内容校验失败，携带全部错误信息
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + strings.Join(e.Errors, ", ")
}

// PersistenceError 存储层错误，原始错误只写日志不返回给调用方
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
