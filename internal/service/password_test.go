package service

// Тесты делегирования смены пароля (internal/service/password.go).
//
// Подготовка окружения:
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/chat-profile-service/internal/clients/userssvc"
)

func TestService_ChangePassword_InvalidArgument(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	cases := []ChangePasswordInput{
		{Username: "", CurrentPassword: "old", NewPassword: "new"},
		{Username: "alice", CurrentPassword: "", NewPassword: "new"},
		{Username: "alice", CurrentPassword: "old", NewPassword: ""},
	}

	for _, input := range cases {
		require.ErrorIs(t, s.ChangePassword(context.Background(), input), ErrInvalidArgument)
	}
}

// Неверный текущий пароль: смена не вызывается.
func TestService_ChangePassword_WrongPassword(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.users.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "old").
		Return(userssvc.ErrWrongPassword)

	err := s.ChangePassword(context.Background(), ChangePasswordInput{
		Username: "alice", CurrentPassword: "old", NewPassword: "new",
	})
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestService_ChangePassword_VerifyUnavailable(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.users.EXPECT().
		VerifyPassword(gomock.Any(), "alice", "old").
		Return(userssvc.ErrUnavailable)

	err := s.ChangePassword(context.Background(), ChangePasswordInput{
		Username: "alice", CurrentPassword: "old", NewPassword: "new",
	})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestService_ChangePassword_ChangeUnavailable(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.users.EXPECT().VerifyPassword(gomock.Any(), "alice", "old").Return(nil)
	sm.users.EXPECT().
		ChangePassword(gomock.Any(), "alice", "new", "token").
		Return(userssvc.ErrUnavailable)

	err := s.ChangePassword(context.Background(), ChangePasswordInput{
		Username: "alice", CurrentPassword: "old", NewPassword: "new", Bearer: "token",
	})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestService_ChangePassword_OK(t *testing.T) {
	s, sm, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	sm.users.EXPECT().VerifyPassword(gomock.Any(), "alice", "old").Return(nil)
	sm.users.EXPECT().ChangePassword(gomock.Any(), "alice", "new", "token").Return(nil)

	err := s.ChangePassword(context.Background(), ChangePasswordInput{
		Username: "alice", CurrentPassword: "old", NewPassword: "new", Bearer: "token",
	})
	require.NoError(t, err)
}
