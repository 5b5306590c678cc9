package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/haapio/accounts/internal/store"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) EnsureSession(sessionID string) store.Session {
	args := m.Called(sessionID)
	return args.Get(0).(store.Session)
}

func (m *MockSessionService) CurrentUser(
	ctx context.Context,
	sessionID string,
) (*store.User, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockSessionService) Login(sessionID string, u *store.User) error {
	args := m.Called(sessionID, u)
	return args.Error(0)
}

func (m *MockSessionService) Logout(sessionID string) {
	m.Called(sessionID)
}
