// apierr стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - стабильный машиночитаемый code и краткое безопасное message без утечки деталей.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/chat-profile-service/internal/auth"
	"github.com/pribylovaa/chat-profile-service/internal/service"
)

// ErrUnauthorized — локальная ошибка транспорта: нет валидного bearer-токена.
var ErrUnauthorized = errors.New("unauthorized")

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - ошибки кодека и staging — клиентские 4xx;
//   - недоступность репозитория/файлового хранилища/делегата — 503;
//   - всё прочее — 500 без раскрытия деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	var status int
	var code, msg string

	switch {
	case err == nil:
		status, code, msg = http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidImage):
		status, code, msg = http.StatusBadRequest, "invalid_image", "file must be a valid image"
	case errors.Is(err, service.ErrInvalidCropRegion):
		status, code, msg = http.StatusBadRequest, "invalid_crop", "crop region is out of bounds"
	case errors.Is(err, service.ErrWrongPassword):
		status, code, msg = http.StatusBadRequest, "wrong_password", "current password is incorrect"
	case errors.Is(err, service.ErrInvalidArgument):
		status, code, msg = http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired):
		status, code, msg = http.StatusUnauthorized, "unauthorized", "authentication required"
	case errors.Is(err, service.ErrForbidden):
		status, code, msg = http.StatusForbidden, "forbidden", "operation allowed only for resource owner"
	case errors.Is(err, service.ErrNotFound):
		status, code, msg = http.StatusNotFound, "not_found", "not found or expired"
	case errors.Is(err, service.ErrUnavailable):
		status, code, msg = http.StatusServiceUnavailable, "unavailable", "backing service unavailable"
	default:
		status, code, msg = http.StatusInternalServerError, "internal", "internal error"
	}

	return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
