package identity

import (
	"context"
	"strings"

	"github.com/scms-platform/identity-service/internal/domain"
)

// Register validates and creates a new account. Checks run in a fixed order
// (email format, email uniqueness, password policy, role) and the first
// failure is returned without evaluating the rest.
func (s *Service) Register(ctx context.Context, email, password, role string) (domain.PublicUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.PublicUser{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return domain.PublicUser{}, domain.ErrMissingField("password")
	}

	if err := domain.ValidateEmailFormat(email); err != nil {
		return domain.PublicUser{}, err
	}

	// Uniqueness pre-check for the ordered error contract. The store enforces
	// it again inside Create, which is what actually closes the race.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.PublicUser{}, domain.ErrEmailExists()
	} else if !domain.Is(err, "user_not_found") {
		return domain.PublicUser{}, err
	}

	if err := domain.ValidatePassword(password); err != nil {
		return domain.PublicUser{}, err
	}

	if role == "" {
		role = string(domain.DefaultRole)
	}
	if !domain.IsValidRole(role) {
		return domain.PublicUser{}, domain.ErrInvalidRole(role)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.PublicUser{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
		IsActive:     true,
		MFAEnabled:   domain.MFARequired(role),
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.PublicUser{}, err
	}

	s.audit("user_registered", map[string]string{
		"user_id": created.ID,
		"role":    created.Role,
	})

	if s.pub != nil {
		evt := UserRegisteredEvent{
			UserID:     created.ID,
			Email:      created.Email,
			Role:       created.Role,
			MFAEnabled: created.MFAEnabled,
		}
		if err := s.pub.PublishUserRegistered(ctx, evt); err != nil {
			s.audit("publish_failed", map[string]string{
				"user_id": created.ID,
				"error":   err.Error(),
			})
		}
	}

	return created.Public(), nil
}
