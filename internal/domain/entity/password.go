package entity

import (
	"strings"
	"unicode"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

const minPasswordLength = 8

// Password holds only the encoded hash of a credential.
type Password struct {
	hash string
}

// NewPassword checks every strength rule, reporting all violations at once,
// then hashes the plaintext with a fresh salt.
func NewPassword(plain string) (Password, error) {
	if rules := passwordViolations(plain); len(rules) > 0 {
		return Password{}, errs.Validation(errs.FieldPassword, "",
			"Password does not meet requirements: "+strings.Join(rules, ", "), rules...)
	}
	hash, err := helpers.HashPassword(plain)
	if err != nil {
		return Password{}, errs.Internal("hash password", err)
	}
	return Password{hash: hash}, nil
}

// PasswordFromHash wraps a hash loaded from storage.
func PasswordFromHash(hash string) Password { return Password{hash: hash} }

func (p Password) Compare(plain string) bool {
	return helpers.CompareHashAndPassword(p.hash, plain)
}

func (p Password) Hash() string { return p.hash }

func passwordViolations(plain string) []string {
	var upper, lower, digit bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	var rules []string
	if len([]rune(plain)) < minPasswordLength {
		rules = append(rules, "at least 8 characters")
	}
	if !upper {
		rules = append(rules, "at least one uppercase letter")
	}
	if !lower {
		rules = append(rules, "at least one lowercase letter")
	}
	if !digit {
		rules = append(rules, "at least one number")
	}
	return rules
}
