package security

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	TitleMinLength   = 3
	TitleMaxLength   = 200
	ContentMinLength = 10
	CommentMaxLength = 5000
)

const (
	MsgTitleTooShort   = "Title must be at least 3 characters"
	MsgTitleTooLong    = "Title must be less than 200 characters"
	MsgContentTooShort = "Content must be at least 10 characters"
	MsgInappropriate   = "Content contains inappropriate language"
	MsgCommentEmpty    = "Comment must not be empty"
	MsgCommentTooLong  = "Comment must be at most 5000 characters"
)

// denylist 仅作粗粒度过滤
var denylist = []string{"spam", "scam", "fake"}

var (
	scriptBlockRegex   = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	javascriptURIRegex = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRegex  = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// PostFields 待校验的帖子字段，nil 表示未提供
type PostFields struct {
	Title   *string
	Content *string
}

type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ValidatePost 校验完整帖子，所有规则都会执行
func ValidatePost(post PostFields) ValidationResult {
	var errs []string

	if post.Title == nil || utf8.RuneCountInString(*post.Title) < TitleMinLength {
		errs = append(errs, MsgTitleTooShort)
	}
	if post.Content == nil || utf8.RuneCountInString(*post.Content) < ContentMinLength {
		errs = append(errs, MsgContentTooShort)
	}
	if post.Title != nil && utf8.RuneCountInString(*post.Title) > TitleMaxLength {
		errs = append(errs, MsgTitleTooLong)
	}
	if containsDenied(deref(post.Title) + " " + deref(post.Content)) {
		errs = append(errs, MsgInappropriate)
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidatePostPatch 只校验部分更新中出现的字段
func ValidatePostPatch(patch PostFields) ValidationResult {
	var errs []string
	var scanned []string

	if patch.Title != nil {
		n := utf8.RuneCountInString(*patch.Title)
		if n < TitleMinLength {
			errs = append(errs, MsgTitleTooShort)
		}
		if n > TitleMaxLength {
			errs = append(errs, MsgTitleTooLong)
		}
		scanned = append(scanned, *patch.Title)
	}
	if patch.Content != nil {
		if utf8.RuneCountInString(*patch.Content) < ContentMinLength {
			errs = append(errs, MsgContentTooShort)
		}
		scanned = append(scanned, *patch.Content)
	}
	if containsDenied(strings.Join(scanned, " ")) {
		errs = append(errs, MsgInappropriate)
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateComment 校验评论内容
func ValidateComment(content string) ValidationResult {
	var errs []string

	n := utf8.RuneCountInString(strings.TrimSpace(content))
	if n == 0 {
		errs = append(errs, MsgCommentEmpty)
	}
	if utf8.RuneCountInString(content) > CommentMaxLength {
		errs = append(errs, MsgCommentTooLong)
	}
	if containsDenied(content) {
		errs = append(errs, MsgInappropriate)
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// SanitizeContent 去除 script 块、javascript: 前缀和内联事件属性。
// 基于黑名单，只是纵深防御的一层，展示层仍需做白名单渲染。
// 重复执行直到结果稳定，拼接残留（如 "javajavascript:script:"）也会被清掉。
func SanitizeContent(content string) string {
	for {
		out := scriptBlockRegex.ReplaceAllString(content, "")
		out = javascriptURIRegex.ReplaceAllString(out, "")
		out = eventHandlerRegex.ReplaceAllString(out, "")
		if out == content {
			return out
		}
		content = out
	}
}

func containsDenied(text string) bool {
	text = strings.ToLower(text)
	for _, word := range denylist {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
