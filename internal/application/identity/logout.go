package identity

import "context"

// Logout is a stateless acknowledgment. There is no revocation table, so the
// bearer token stays valid until its embedded expiry; the client is expected
// to discard it. This is a documented limitation, not an oversight.
func (s *Service) Logout(ctx context.Context) {
	s.audit("user_logged_out", nil)
}
