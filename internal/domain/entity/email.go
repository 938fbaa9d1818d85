package entity

import (
	"regexp"
	"strings"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

const maxEmailLength = 320

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a lowercased, trimmed address. A zero Email is never returned
// alongside a nil error.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	var rules []string
	if len(v) > maxEmailLength {
		rules = append(rules, "at most 320 characters")
	}
	if !emailPattern.MatchString(v) {
		rules = append(rules, "must look like local@domain.tld")
	}
	if len(rules) > 0 {
		return Email{}, errs.Validation(errs.FieldEmail, raw, "Invalid email format: "+raw, rules...)
	}
	return Email{value: v}, nil
}

func (e Email) String() string          { return e.value }
func (e Email) Equals(other Email) bool { return e.value == other.value }
