package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scms-platform/identity-service/internal/application/identity"
	"github.com/scms-platform/identity-service/internal/transport/http/dto"
	"github.com/scms-platform/identity-service/internal/transport/http/response"
)

type UserHandler struct {
	svc *identity.Service
}

func NewUserHandler(svc *identity.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.svc.GetUserByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.UserDetail{
		UserID:              user.ID,
		Email:               user.Email,
		Role:                user.Role,
		CreatedAt:           user.CreatedAt,
		IsActive:            user.IsActive,
		FailedLoginAttempts: user.FailedLoginAttempts,
		MFAEnabled:          user.MFAEnabled,
	})
}
