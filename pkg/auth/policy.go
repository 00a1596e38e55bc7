package auth

import (
	"errors"
	"strings"
	"unicode"
)

// specialChars is the fixed set of characters accepted as "special" by the
// registration password policy.
const specialChars = `!@#$%^&*()-_=+[]{};:'",.<>/?\|` + "`~"

// Policy violation errors. CheckPolicy returns the first violated rule so the
// API can surface a specific message.
var (
	ErrPasswordTooShort  = errors.New("Password must be at least 8 characters")
	ErrPasswordNoUpper   = errors.New("Password must contain an uppercase letter")
	ErrPasswordNoDigit   = errors.New("Password must contain a digit")
	ErrPasswordNoSpecial = errors.New("Password must contain a special character")
)

// CheckPolicy validates password strength at registration. All four rules
// must hold; there is no partial credit. Pure function, no side effects.
func CheckPolicy(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return ErrPasswordNoUpper
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if !hasSpecial {
		return ErrPasswordNoSpecial
	}
	return nil
}

// MeetsPolicy reports whether password satisfies all policy rules.
func MeetsPolicy(password string) bool {
	return CheckPolicy(password) == nil
}

// IsPolicyError reports whether err is a password policy violation. The
// API surfaces these verbatim; other signup errors are not client-safe.
func IsPolicyError(err error) bool {
	return errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordNoUpper) ||
		errors.Is(err, ErrPasswordNoDigit) ||
		errors.Is(err, ErrPasswordNoSpecial)
}
