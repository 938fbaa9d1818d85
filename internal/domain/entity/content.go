package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

const (
	maxContentLength     = 50000
	DefaultPreviewLength = 200
)

func normalizeContent(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(v); n < 1 || n > maxContentLength {
		return "", errs.Validation(errs.FieldContent, raw,
			fmt.Sprintf("Content must be between 1 and %d characters", maxContentLength),
			"length between 1 and 50000")
	}
	return v, nil
}

// PostContent is the body of a post.
type PostContent struct {
	value string
}

func NewPostContent(raw string) (PostContent, error) {
	v, err := normalizeContent(raw)
	if err != nil {
		return PostContent{}, err
	}
	return PostContent{value: v}, nil
}

func (c PostContent) String() string                { return c.value }
func (c PostContent) Equals(other PostContent) bool { return c.value == other.value }

// Preview returns at most n runes of the content, suffixed with "..." when
// cut. n <= 0 means DefaultPreviewLength.
func (c PostContent) Preview(n int) string { return Preview(c.value, n) }

// Preview cuts s to n runes plus "..." when it is longer.
func Preview(s string, n int) string {
	if n <= 0 {
		n = DefaultPreviewLength
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// CommentContent is the body of a comment.
type CommentContent struct {
	value string
}

func NewCommentContent(raw string) (CommentContent, error) {
	v, err := normalizeContent(raw)
	if err != nil {
		return CommentContent{}, err
	}
	return CommentContent{value: v}, nil
}

func (c CommentContent) String() string                   { return c.value }
func (c CommentContent) Equals(other CommentContent) bool { return c.value == other.value }
