package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/chat-profile-service/internal/models"
	"github.com/pribylovaa/chat-profile-service/internal/service"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/apierr"
)

// profileResponse — представление профиля в API.
// profile_picture_path — null, пока аватар не установлен.
type profileResponse struct {
	Username           string  `json:"username"`
	Bio                string  `json:"bio"`
	ProfilePicturePath *string `json:"profile_picture_path"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type updateProfileRequest struct {
	Bio *string `json:"bio"`
}

type searchResponse struct {
	Profiles []searchItem `json:"profiles"`
}

type searchItem struct {
	Username           string  `json:"username"`
	Bio                string  `json:"bio"`
	ProfilePicturePath *string `json:"profile_picture_path"`
}

func toProfileResponse(profile *models.Profile) profileResponse {
	resp := profileResponse{
		Username:  profile.Username,
		Bio:       profile.Bio,
		CreatedAt: profile.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: profile.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if profile.ProfilePicturePath != "" {
		path := profile.ProfilePicturePath
		resp.ProfilePicturePath = &path
	}

	return resp
}

// GetProfile — GET /profile/{username}.
//
// Чтение публичное: профиль отдаётся любому аутентифицированному и
// неаутентифицированному клиенту. Несуществующий профиль создаётся
// с пустыми полями (upsert-on-read).
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	profile, err := h.Service.ProfileByUsername(r.Context(), username)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile — PUT /profile/{username}.
//
// Только владелец профиля может менять bio. Отсутствующее поле bio
// означает «не менять», пустая строка — явная очистка.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if !requireOwner(w, r, username) {
		return
	}

	var req updateProfileRequest
	if err := decodeStrict(r, &req); err != nil {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	profile, err := h.Service.UpdateProfile(r.Context(), service.UpdateProfileInput{
		Username: username,
		Bio:      req.Bio,
	})
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// SearchProfiles — GET /profiles/search?q=<substr>&limit=<n>.
//
// Пустой q допустим: подстрока "" совпадает со всеми профилями,
// ответ ограничен лимитом.
func (h *Handlers) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			apierr.WriteError(w, r, service.ErrInvalidArgument)
			return
		}

		limit = parsed
	}

	profiles, err := h.Service.SearchProfiles(r.Context(), query, limit)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	items := make([]searchItem, 0, len(profiles))
	for i := range profiles {
		item := searchItem{
			Username: profiles[i].Username,
			Bio:      profiles[i].Bio,
		}

		if profiles[i].ProfilePicturePath != "" {
			path := profiles[i].ProfilePicturePath
			item.ProfilePicturePath = &path
		}

		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, searchResponse{Profiles: items})
}
