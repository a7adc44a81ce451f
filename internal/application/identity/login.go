package identity

import (
	"context"
	"strings"

	"github.com/scms-platform/identity-service/internal/domain"
)

type LoginResult struct {
	User  domain.PublicUser
	Token string
}

// Login authenticates a user and issues a bearer token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration):
// unknown email, wrong password and a failing store lookup all collapse into
// the same invalid_credentials result.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	tok, err := s.signer.Sign(u.ID, u.Email, u.Role, s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	s.audit("user_logged_in", map[string]string{"user_id": u.ID})

	return LoginResult{User: u.Public(), Token: tok}, nil
}
