package identity

import (
	"context"
	"time"

	"github.com/scms-platform/identity-service/internal/domain"
)

/*
UserStore
---------
Persistence port for user records. Only describes WHAT the identity service
needs, not HOW it's stored; the file, memory and postgres implementations are
interchangeable.

Create receives a record without an ID and must allocate the next
USR-<year>-NNNN id and enforce case-folded email uniqueness atomically, so
that concurrent registrations cannot race to the same id or email.
*/
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts the salted, iterated one-way hash (PBKDF2-SHA256 here).
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

// TokenClaims are the identity facts embedded in a bearer token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

/*
TokenSigner
-----------
Issues and verifies bearer tokens. Used by the service and the auth
middleware. Verify must distinguish an expired token from a structurally
invalid or badly signed one.
*/
type TokenSigner interface {
	Sign(userID, email, role string, ttl time.Duration) (string, error)
	Verify(token string) (TokenClaims, error)
}

// UserRegisteredEvent is published after a successful registration.
type UserRegisteredEvent struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	MFAEnabled bool   `json:"mfa_enabled"`
}

/*
EventPublisher
--------------
Fire-and-forget notification port. A publish failure is logged through the
audit hook and never fails the registration itself.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}
