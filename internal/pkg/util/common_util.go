package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 200

// NormalizeTags 去掉首尾空白与 # 前缀，按 slug 去重，保持原有顺序
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{})
	var tags []string

	for _, name := range raw {
		name = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(name), "#"))
		name = strings.Trim(name, ".,，。!?！？")
		if name == "" {
			continue
		}
		slug := Slugify(name)
		if slug == "" {
			continue
		}
		if _, exists := seen[slug]; exists {
			continue
		}
		seen[slug] = struct{}{}
		tags = append(tags, name)
	}

	return tags
}

// Slugify 生成 URL 友好的 slug：去掉变音符号，转小写，非字母数字折叠为单个 "-"
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(truncateRunes(slug, maxSlugLength), "-")
	}
	return slug
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}

func truncateRunes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := 0
	for i := range s {
		if i > maxBytes {
			break
		}
		cut = i
	}
	return s[:cut]
}
