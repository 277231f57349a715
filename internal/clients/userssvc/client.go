// userssvc — типизированный клиент внешнего user-service, которому
// profile-service делегирует операции с паролем. Сервис только проксирует
// учётные данные: хэширование/ротация паролей ему не принадлежат.
package userssvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrWrongPassword — user-service отверг текущий пароль.
	ErrWrongPassword = errors.New("wrong password")
	// ErrUnavailable — user-service недоступен или ответил неожиданно.
	ErrUnavailable = errors.New("users service unavailable")
)

// Client — контракт делегирования операций с паролем.
type Client interface {
	// VerifyPassword проверяет пару username/password через логин-эндпойнт.
	VerifyPassword(ctx context.Context, username, password string) error
	// ChangePassword устанавливает новый пароль от имени пользователя;
	// bearer — исходный токен запроса (user-service проверяет его сам).
	ChangePassword(ctx context.Context, username, newPassword, bearer string) error
}

// HTTPClient — реализация Client поверх REST API user-service.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient создаёт клиент с per-call таймаутом.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// VerifyPassword вызывает POST /api/users/login.
// Ошибки: ErrWrongPassword на 401/403/400, ErrUnavailable на прочее.
func (c *HTTPClient) VerifyPassword(ctx context.Context, username, password string) error {
	const op = "clients/userssvc/VerifyPassword"

	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/users/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	defer drainClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%s: %w", op, ErrWrongPassword)
	default:
		return fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, ErrUnavailable)
	}
}

// ChangePassword вызывает PUT /api/users/{username}/password.
// Любой не-200 ответ — ErrUnavailable: сервис не маскирует расхождения
// формы ответа под успех.
func (c *HTTPClient) ChangePassword(ctx context.Context, username, newPassword, bearer string) error {
	const op = "clients/userssvc/ChangePassword"

	body, err := json.Marshal(changePasswordRequest{NewPassword: newPassword})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	endpoint := c.baseURL + "/api/users/" + url.PathEscape(username) + "/password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	defer drainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, ErrUnavailable)
	}

	return nil
}

// drainClose дочитывает тело ответа для переиспользования соединения.
func drainClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}

// Проверка выполнения контракта.
var _ Client = (*HTTPClient)(nil)
