package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/chat-profile-service/internal/models"
	"github.com/pribylovaa/chat-profile-service/internal/service"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/apierr"
)

type uploadResponse struct {
	TempID     string `json:"temp_id"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	PreviewURL string `json:"preview_url"`
}

type cropRequest struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type processImageRequest struct {
	TempID string       `json:"temp_id"`
	Crop   *cropRequest `json:"crop"`
}

type processImageResponse struct {
	Message            string `json:"message"`
	ProfilePicturePath string `json:"profile_picture_path"`
}

// UploadTempImage — POST /profile/{username}/upload-temp-image.
//
// Принимает multipart/form-data с полем image, валидирует и кладёт
// исходник во временное хранилище. Размер тела ограничен MaxUploadBytes:
// превышение — 400, а не 413, чтобы не раскрывать детали лимитов.
func (h *Handlers) UploadTempImage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if !requireOwner(w, r, username) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	file, _, err := r.FormFile("image")
	if err != nil {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	result, err := h.Service.UploadTempImage(r.Context(), username, raw)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		TempID:     result.TempID,
		Width:      result.Width,
		Height:     result.Height,
		PreviewURL: result.PreviewURL,
	})
}

// TempImage — GET /temp-image/{temp_id}.
//
// Отдаёт превью загруженного изображения (JPEG). Эндпоинт не требует
// аутентификации: temp_id — случайный UUID, знание которого и есть доступ.
func (h *Handlers) TempImage(w http.ResponseWriter, r *http.Request) {
	tempID := chi.URLParam(r, "temp_id")
	if tempID == "" {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	data, err := h.Service.TempImageBytes(r.Context(), tempID)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ProcessImage — POST /profile/{username}/process-image.
//
// Коммит двухфазной загрузки: опциональный кроп, ресайз до финального
// размера и установка результата как аватара профиля.
func (h *Handlers) ProcessImage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if !requireOwner(w, r, username) {
		return
	}

	var req processImageRequest
	if err := decodeStrict(r, &req); err != nil || req.TempID == "" {
		apierr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	input := service.ProcessImageInput{
		Username: username,
		TempID:   req.TempID,
	}

	if req.Crop != nil {
		input.Crop = &models.CropRect{
			X:      req.Crop.X,
			Y:      req.Crop.Y,
			Width:  req.Crop.Width,
			Height: req.Crop.Height,
		}
	}

	profile, err := h.Service.ProcessImage(r.Context(), input)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, processImageResponse{
		Message:            "profile picture updated",
		ProfilePicturePath: profile.ProfilePicturePath,
	})
}
