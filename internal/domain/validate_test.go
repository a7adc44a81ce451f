package domain

import (
	"testing"
	"time"
)

func TestValidateEmailFormat(t *testing.T) {
	t.Parallel()

	valid := []string{
		"dev@example.com",
		"first.last@sub.example.org",
		"user+tag@example.co",
		"a_b%c-d@host-name.io",
	}
	for _, e := range valid {
		if err := ValidateEmailFormat(e); err != nil {
			t.Fatalf("expected %q valid, got %v", e, err)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user@example.c",
		"user example@example.com",
	}
	for _, e := range invalid {
		err := ValidateEmailFormat(e)
		if err == nil {
			t.Fatalf("expected %q invalid", e)
		}
		if !Is(err, "invalid_email") {
			t.Fatalf("expected invalid_email for %q, got %v", e, err)
		}
	}
}

func TestValidatePassword_RuleOrderAndMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		password string
		wantMsg  string
	}{
		{"Ab1!", "Password must be at least 8 characters"},
		{"abc123!@xyz", "Password must contain at least one uppercase letter"},
		{"ABC123!@XYZ", "Password must contain at least one lowercase letter"},
		{"Abcdefg!", "Password must contain at least one digit"},
		{"Abc12345", "Password must contain at least one special character"},
	}

	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if err == nil {
			t.Fatalf("expected %q to fail", tc.password)
		}
		de, ok := err.(*Error)
		if !ok {
			t.Fatalf("expected *Error, got %T", err)
		}
		if de.Code != "weak_password" {
			t.Fatalf("expected weak_password, got %s", de.Code)
		}
		if de.Message != tc.wantMsg {
			t.Fatalf("password %q: expected message %q, got %q", tc.password, tc.wantMsg, de.Message)
		}
	}
}

func TestValidatePassword_Valid(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"Abc123!@", `Str0ng."Pass`, "X9y8z7w6!"} {
		if err := ValidatePassword(p); err != nil {
			t.Fatalf("expected %q valid, got %v", p, err)
		}
	}
}

func TestNextUserID_SequenceWithinYear(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := NextUserID(now, nil); got != "USR-2026-0001" {
		t.Fatalf("expected USR-2026-0001, got %s", got)
	}

	existing := []string{"USR-2026-0001", "USR-2026-0007", "USR-2025-0042"}
	if got := NextUserID(now, existing); got != "USR-2026-0008" {
		t.Fatalf("expected USR-2026-0008, got %s", got)
	}
}

func TestNextUserID_FreshSequenceEachYear(t *testing.T) {
	t.Parallel()

	existing := []string{"USR-2026-0031"}
	next := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := NextUserID(next, existing); got != "USR-2027-0001" {
		t.Fatalf("expected USR-2027-0001, got %s", got)
	}
}

func TestNextUserID_IgnoresMalformedSuffixes(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	existing := []string{"USR-2026-abcd", "USR-2026-", "USR-2026-0002"}

	if got := NextUserID(now, existing); got != "USR-2026-0003" {
		t.Fatalf("expected USR-2026-0003, got %s", got)
	}
}
