package identity

import (
	"time"
)

// DefaultTokenTTL bounds bearer tokens to 24 hours from issuance.
const DefaultTokenTTL = 24 * time.Hour

type Service struct {
	users  UserStore
	hasher PasswordHasher
	signer TokenSigner
	pub    EventPublisher

	tokenTTL time.Duration
	now      func() time.Time
	audit    func(action string, fields map[string]string)
}

type Config struct {
	TokenTTL time.Duration
}

func NewService(users UserStore, hasher PasswordHasher, signer TokenSigner, pub EventPublisher, cfg Config) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		pub:      pub,
		tokenTTL: ttl,
		now:      time.Now,
		audit:    func(string, map[string]string) {},
	}
}

// WithAudit installs a hook that receives structured audit events
// (registrations, logins, publish failures).
func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// TokenTTL reports the configured bearer token lifetime.
func (s *Service) TokenTTL() time.Duration { return s.tokenTTL }
