// Package validator holds the field rules applied to registration input.
//
// Every function is pure and total: any string yields either nil or a
// *ValidationError naming the field and the rule it broke.
package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// Field names reported in ValidationError.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

var (
	localPartRegex   = regexp.MustCompile(`^[A-Za-z0-9._+-]+$`)
	domainLabelRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// ValidationError describes a user-correctable input problem.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidateUsername requires a non-empty username.
func ValidateUsername(username string) error {
	if username == "" {
		return invalid(FieldUsername, "must not be empty")
	}
	return nil
}

// ValidateEmail accepts addresses shaped like local-part@domain.tld.
func ValidateEmail(email string) error {
	if email == "" {
		return invalid(FieldEmail, "must not be empty")
	}
	if strings.IndexFunc(email, unicode.IsSpace) >= 0 {
		return invalid(FieldEmail, "must not contain whitespace")
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return invalid(FieldEmail, "must contain exactly one @")
	}
	if !localPartRegex.MatchString(local) {
		return invalid(FieldEmail, "local part may only contain letters, digits and . _ + -")
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return invalid(FieldEmail, "domain must contain at least one dot")
	}
	for _, label := range labels {
		if !domainLabelRegex.MatchString(label) {
			return invalid(FieldEmail, "domain labels may only contain letters, digits and - and must not be empty")
		}
	}

	return nil
}

// ValidatePassword enforces length and character-class rules.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalid(FieldPassword, fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSpecial = true
		}
	}

	switch {
	case !hasLower:
		return invalid(FieldPassword, "must contain a lowercase letter")
	case !hasUpper:
		return invalid(FieldPassword, "must contain an uppercase letter")
	case !hasDigit:
		return invalid(FieldPassword, "must contain a digit")
	case !hasSpecial:
		return invalid(FieldPassword, "must contain a non-alphanumeric character")
	}

	return nil
}
