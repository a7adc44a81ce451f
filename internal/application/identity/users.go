package identity

import (
	"context"
	"strings"

	"github.com/scms-platform/identity-service/internal/domain"
)

// GetUserByID returns the full record; transport layers are responsible for
// stripping the password hash before serialization.
func (s *Service) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return s.users.GetByID(ctx, id)
}

// GetUserByEmail performs a case-insensitive lookup.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.users.GetByEmail(ctx, strings.TrimSpace(email))
}
