package handlers

import (
	"net/http"

	"github.com/scms-platform/identity-service/internal/application/identity"
	"github.com/scms-platform/identity-service/internal/domain"
	"github.com/scms-platform/identity-service/internal/logger"
	"github.com/scms-platform/identity-service/internal/transport/http/dto"
	"github.com/scms-platform/identity-service/internal/transport/http/middleware"
	"github.com/scms-platform/identity-service/internal/transport/http/response"
)

// AuthHandler serves registration, login, logout and the protected
// resource probe.
type AuthHandler struct {
	svc     *identity.Service
	metrics *middleware.Metrics
}

func NewAuthHandler(svc *identity.Service, metrics *middleware.Metrics) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: metrics}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		logger.WithCtx(r.Context()).Warn().Err(err).Str("email", req.Email).Msg("registration rejected")
		response.WriteError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RegistrationsTotal.Inc()
	}

	response.Created(w, dto.RegisterResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Message: "User registered successfully",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.countLogin("failure")
		// Do not log which credential check failed.
		logger.WithCtx(r.Context()).Warn().Str("email", req.Email).Msg("login rejected")
		response.WriteError(w, r, err)
		return
	}

	h.countLogin("success")
	response.OK(w, dto.LoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		UserID:  result.User.ID,
		Role:    result.User.Role,
	})
}

// Logout is stateless: tokens are not tracked server side, so the client is
// instructed to discard its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Context())
	response.OK(w, dto.LogoutResponse{
		Message: "Logout successful. Client should delete the local token.",
	})
}

// Protected answers with the caller's verified identity. It sits behind the
// auth middleware; missing claims mean the route was wired without it.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	response.OK(w, dto.ProtectedResponse{
		Message: "Access granted to protected data",
		UserInfo: dto.TokenUserInfo{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		},
	})
}

func (h *AuthHandler) countLogin(status string) {
	if h.metrics != nil {
		h.metrics.LoginAttemptsTotal.WithLabelValues(status).Inc()
	}
}
