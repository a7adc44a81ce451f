package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// emailPattern matches local@domain.tld with a TLD of at least two letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const MinPasswordLength = 8

// passwordSpecials is the fixed special-character set accepted by the
// password policy.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// ValidateEmailFormat checks shape only; uniqueness is checked against the
// store by the identity service.
func ValidateEmailFormat(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail()
	}
	return nil
}

// ValidatePassword applies the password policy rules in order and reports the
// first violated rule. Failures are not accumulated.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return ErrWeakPassword("Password must contain at least one uppercase letter")
	case !hasLower:
		return ErrWeakPassword("Password must contain at least one lowercase letter")
	case !hasDigit:
		return ErrWeakPassword("Password must contain at least one digit")
	case !hasSpecial:
		return ErrWeakPassword("Password must contain at least one special character")
	}
	return nil
}

// NextUserID returns the next id in the USR-<year>-NNNN sequence given the
// ids already in the store. The sequence is per calendar year and restarts at
// 0001 in January.
//
// The scan itself is not concurrency-safe: callers (the stores) must invoke it
// inside the same critical section that appends the new record.
func NextUserID(now time.Time, existing []string) string {
	prefix := fmt.Sprintf("USR-%d-", now.Year())

	max := 0
	for _, id := range existing {
		suffix, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1)
}

// FormatUserID builds a user id from its year and sequence number. Used by
// stores that keep a counter instead of scanning existing ids.
func FormatUserID(year, seq int) string {
	return fmt.Sprintf("USR-%d-%04d", year, seq)
}
