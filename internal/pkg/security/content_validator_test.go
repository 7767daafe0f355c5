package security_test

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"Inkwell/internal/pkg/security"
)

func ptr(s string) *string {
	return &s
}

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name     string
		post     security.PostFields
		expected []string
	}{
		{
			name:     "valid post",
			post:     security.PostFields{Title: ptr("Weekly notes"), Content: ptr("Some thoughts on Go generics.")},
			expected: nil,
		},
		{
			name:     "missing title and content",
			post:     security.PostFields{},
			expected: []string{security.MsgTitleTooShort, security.MsgContentTooShort},
		},
		{
			name:     "short title",
			post:     security.PostFields{Title: ptr("Hi"), Content: ptr("long enough content")},
			expected: []string{security.MsgTitleTooShort},
		},
		{
			name:     "short content",
			post:     security.PostFields{Title: ptr("Fine title"), Content: ptr("short")},
			expected: []string{security.MsgContentTooShort},
		},
		{
			name:     "long title and short content",
			post:     security.PostFields{Title: ptr(strings.Repeat("a", 201)), Content: ptr("tiny")},
			expected: []string{security.MsgContentTooShort, security.MsgTitleTooLong},
		},
		{
			name:     "title at max length",
			post:     security.PostFields{Title: ptr(strings.Repeat("a", 200)), Content: ptr("long enough content")},
			expected: nil,
		},
		{
			name:     "denied word reported once",
			post:     security.PostFields{Title: ptr("SPAM and scam"), Content: ptr("this is fake news")},
			expected: []string{security.MsgInappropriate},
		},
		{
			name:     "denied word alongside field errors",
			post:     security.PostFields{Title: ptr("ok"), Content: ptr("scam")},
			expected: []string{security.MsgTitleTooShort, security.MsgContentTooShort, security.MsgInappropriate},
		},
		{
			name:     "length counted in characters",
			post:     security.PostFields{Title: ptr("日本語"), Content: ptr("これは十分な長さの本文です")},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			res := security.ValidatePost(tt.post)
			c.Assert(res.Errors, qt.DeepEquals, tt.expected)
			c.Assert(res.Valid, qt.Equals, len(tt.expected) == 0)
		})
	}
}

func TestValidatePostPatch(t *testing.T) {
	tests := []struct {
		name     string
		patch    security.PostFields
		expected []string
	}{
		{
			name:     "empty patch",
			patch:    security.PostFields{},
			expected: nil,
		},
		{
			name:     "content only",
			patch:    security.PostFields{Content: ptr("updated body text")},
			expected: nil,
		},
		{
			name:     "short title only",
			patch:    security.PostFields{Title: ptr("No")},
			expected: []string{security.MsgTitleTooShort},
		},
		{
			name:     "denied word in content",
			patch:    security.PostFields{Content: ptr("Totally not a Scam, promise")},
			expected: []string{security.MsgInappropriate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			res := security.ValidatePostPatch(tt.patch)
			c.Assert(res.Errors, qt.DeepEquals, tt.expected)
			c.Assert(res.Valid, qt.Equals, len(tt.expected) == 0)
		})
	}
}

func TestValidateComment(t *testing.T) {
	c := qt.New(t)

	c.Assert(security.ValidateComment("Nice write-up!").Valid, qt.IsTrue)
	c.Assert(security.ValidateComment("   ").Errors, qt.DeepEquals, []string{security.MsgCommentEmpty})
	c.Assert(security.ValidateComment(strings.Repeat("x", 5001)).Errors, qt.DeepEquals, []string{security.MsgCommentTooLong})
	c.Assert(security.ValidateComment("buy cheap spam").Errors, qt.DeepEquals, []string{security.MsgInappropriate})
}

func TestSanitizeContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "script block",
			input:    "before<script>alert('x')</script>after",
			expected: "beforeafter",
		},
		{
			name:     "mixed case multi-line script",
			input:    "a<SCRIPT type=\"text/javascript\">\nvar x = 1;\n</ScRiPt>b",
			expected: "ab",
		},
		{
			name:     "two script blocks keep text between",
			input:    "<script>1</script>keep<script>2</script>",
			expected: "keep",
		},
		{
			name:     "javascript uri",
			input:    `<a href="JavaScript:alert(1)">x</a>`,
			expected: `<a href="alert(1)">x</a>`,
		},
		{
			name:     "event handler",
			input:    `<img src="a.png" onerror="steal()">`,
			expected: `<img src="a.png" "steal()">`,
		},
		{
			name:     "event handler with spaces",
			input:    `<div onClick  ="x()">`,
			expected: `<div "x()">`,
		},
		{
			name:     "nested obfuscation",
			input:    "javajavascript:script:alert(1)",
			expected: "alert(1)",
		},
		{
			name:     "markdown untouched",
			input:    "# Title\n\n<em>hello</em> [link](https://example.com)",
			expected: "# Title\n\n<em>hello</em> [link](https://example.com)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			out := security.SanitizeContent(tt.input)
			c.Assert(out, qt.Equals, tt.expected)
			c.Assert(security.SanitizeContent(out), qt.Equals, out)
		})
	}
}
