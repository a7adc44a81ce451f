package identity

import (
	"context"
	"testing"

	"github.com/scms-platform/identity-service/internal/domain"
)

func TestGetUserByID(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _ := newSvcForTest(t)
	users.add(domain.User{ID: "USR-2026-0001", Email: "dev@example.com", Role: "Developer"})

	u, err := svc.GetUserByID(context.Background(), "USR-2026-0001")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.Email != "dev@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	_, err = svc.GetUserByID(context.Background(), "USR-2026-9999")
	requireErrCode(t, err, "user_not_found")

	_, err = svc.GetUserByID(context.Background(), "   ")
	requireErrCode(t, err, "user_not_found")
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _ := newSvcForTest(t)
	users.add(domain.User{ID: "USR-2026-0001", Email: "dev@example.com", Role: "Developer"})

	u, err := svc.GetUserByEmail(context.Background(), "DEV@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.ID != "USR-2026-0001" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestLogout_IsAdvisoryOnly(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, audit := newSvcForTest(t)

	svc.Logout(context.Background())
	if !audit.has("user_logged_out") {
		t.Fatalf("expected audit event")
	}
}
