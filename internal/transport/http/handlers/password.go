package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/chat-profile-service/internal/service"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/apierr"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/middleware"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword — POST /profile/{username}/change-password.
//
// Сервис профилей паролей не хранит: текущий пароль проверяется и новый
// устанавливается через user-service, токен клиента пробрасывается как есть.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if !requireOwner(w, r, username) {
		return
	}

	var req changePasswordRequest
	if err := decodeStrict(r, &req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	bearer, _ := middleware.BearerFrom(r.Context())

	err := h.Service.ChangePassword(r.Context(), service.ChangePasswordInput{
		Username:        username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Bearer:          bearer,
	})
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
