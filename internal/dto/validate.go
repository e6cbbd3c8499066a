package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
)

const (
	minPasswordLength = 8
	// bcrypt refuses longer input.
	maxPasswordBytes = 72
)

// validator collects the first failure per field.
type validator struct {
	fields map[string]string
}

func newValidator() *validator {
	return &validator{fields: make(map[string]string)}
}

func (v *validator) add(field, msg string) {
	if _, ok := v.fields[field]; !ok {
		v.fields[field] = msg
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return apperr.Validation(v.fields)
}

// email trims and lowercases s and checks it is a bare address.
func (v *validator) email(field, s string) string {
	s = NormalizeEmail(s)
	if s == "" {
		v.add(field, "Email is required")
		return s
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@"):], ".") {
		v.add(field, "Please provide a valid email address")
	}
	return s
}

func (v *validator) password(field, s string) {
	switch {
	case len(s) < minPasswordLength:
		v.add(field, "Password must be at least 8 characters long")
	case len(s) > maxPasswordBytes:
		v.add(field, apperr.MsgPasswordTooLong)
	case !strings.ContainsFunc(s, unicode.IsDigit):
		v.add(field, "Password must contain at least one number")
	case !strings.ContainsFunc(s, unicode.IsUpper):
		v.add(field, "Password must contain at least one uppercase letter")
	}
}

func (v *validator) required(field, label, s string) {
	if s == "" {
		v.add(field, label+" is required")
	}
}

func (v *validator) length(field, label, s string, lo, hi int) string {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < lo || n > hi {
		v.add(field, fmt.Sprintf("%s must be between %d and %d characters", label, lo, hi))
	}
	return s
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
