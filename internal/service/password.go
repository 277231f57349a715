package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/chat-profile-service/internal/clients/userssvc"
	"github.com/pribylovaa/chat-profile-service/pkg/log"
)

// ChangePasswordInput — вход операции смены пароля.
// Bearer — исходный токен запроса; user-service валидирует его сам.
type ChangePasswordInput struct {
	Username        string
	CurrentPassword string
	NewPassword     string
	Bearer          string
}

// ChangePassword делегирует смену пароля внешнему user-service.
//
// Процесс: проверка текущего пароля логин-эндпойнтом, затем установка нового.
// Сервис только проксирует учётные данные; ошибки делегата пробрасываются
// явно (ErrWrongPassword / ErrUnavailable), без маскировки под успех.
func (s *Service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	const op = "service/password/ChangePassword"

	lg := log.From(ctx).With("op", op, "username", input.Username)

	if input.Username == "" || input.CurrentPassword == "" || input.NewPassword == "" {
		lg.Warn("invalid argument: empty username or password")

		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.users.VerifyPassword(ctx, input.Username, input.CurrentPassword); err != nil {
		if errors.Is(err, userssvc.ErrWrongPassword) {
			lg.Warn("current password rejected")

			return fmt.Errorf("%s: %w", op, ErrWrongPassword)
		}

		lg.Error("users service error on VerifyPassword", "err", err)

		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	if err := s.users.ChangePassword(ctx, input.Username, input.NewPassword, input.Bearer); err != nil {
		lg.Error("users service error on ChangePassword", "err", err)

		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	lg.Info("password changed")

	return nil
}
