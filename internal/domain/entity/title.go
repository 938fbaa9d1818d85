package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

const (
	minTitleLength = 1
	maxTitleLength = 200
)

type Title struct {
	value string
}

func NewTitle(raw string) (Title, error) {
	v := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(v); n < minTitleLength || n > maxTitleLength {
		return Title{}, errs.Validation(errs.FieldTitle, raw,
			fmt.Sprintf("Title must be between %d and %d characters", minTitleLength, maxTitleLength),
			"length between 1 and 200")
	}
	return Title{value: v}, nil
}

func (t Title) String() string          { return t.value }
func (t Title) Equals(other Title) bool { return t.value == other.value }
