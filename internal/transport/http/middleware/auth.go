package middleware

import (
	"net/http"
	"strings"

	"github.com/scms-platform/identity-service/internal/application/identity"
	"github.com/scms-platform/identity-service/internal/domain"
)

// TokenVerifier is the slice of the token signer the middleware needs.
type TokenVerifier interface {
	Verify(token string) (identity.TokenClaims, error)
}

// WriteErrFunc renders an error response. Injected so the middleware does not
// depend on the response package directly.
type WriteErrFunc func(w http.ResponseWriter, r *http.Request, err error)

// Auth guards a route subtree with bearer-token authentication.
//
// Requests without an Authorization header are rejected as missing a token;
// requests with a malformed scheme or an empty/invalid/expired token are
// rejected as invalid. On success the verified claims are injected into the
// request context for handlers to read via ClaimsFromContext.
func Auth(verifier TokenVerifier, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := extractBearer(r)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func extractBearer(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrTokenMissing()
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", domain.ErrTokenInvalid()
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrTokenInvalid()
	}
	return token, nil
}
