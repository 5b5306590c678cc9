package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/haapio/accounts/internal/store"
)

type MockPrincipalReader struct {
	mock.Mock
}

func (m *MockPrincipalReader) ReadUserByID(ctx context.Context, userID int64) (*store.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func TestSessionService_EnsureSession(t *testing.T) {
	t.Run("success - empty id creates a fresh anonymous session", func(t *testing.T) {
		// arrange
		svc := NewSessionService(store.NewSessionStore(time.Hour), new(MockPrincipalReader))

		// act
		s := svc.EnsureSession("")

		// assert
		assert.NotEmpty(t, s.SessionID)
		assert.True(t, s.Anonymous())
	})
	t.Run("success - known id returns the same session", func(t *testing.T) {
		// arrange
		svc := NewSessionService(store.NewSessionStore(time.Hour), new(MockPrincipalReader))
		first := svc.EnsureSession("")

		// act
		second := svc.EnsureSession(first.SessionID)

		// assert
		assert.Equal(t, first.SessionID, second.SessionID)
	})
	t.Run("success - expired id gets a replacement session", func(t *testing.T) {
		// arrange
		sessions := store.NewSessionStore(-time.Second)
		svc := NewSessionService(sessions, new(MockPrincipalReader))
		first := svc.EnsureSession("")

		// act
		second := svc.EnsureSession(first.SessionID)

		// assert
		assert.NotEqual(t, first.SessionID, second.SessionID)
	})
}

func TestSessionService_LoginLogout(t *testing.T) {
	t.Run("success - login then current user returns the principal", func(t *testing.T) {
		// arrange
		u := &store.User{UserID: 1, Email: "a@b.com", SessionKey: "skey-1", UserRole: store.RoleUser}
		users := new(MockPrincipalReader)
		users.On("ReadUserByID", context.Background(), u.UserID).Return(u, nil)
		svc := NewSessionService(store.NewSessionStore(time.Hour), users)
		s := svc.EnsureSession("")

		// act
		err := svc.Login(s.SessionID, u)

		// assert
		assert.NoError(t, err)
		got, err := svc.CurrentUser(context.Background(), s.SessionID)
		assert.NoError(t, err)
		assert.Equal(t, u.Email, got.Email)
		assert.Empty(t, got.PasswordHash)
	})
	t.Run("success - login twice for the same user is idempotent", func(t *testing.T) {
		// arrange
		u := &store.User{UserID: 1, Email: "a@b.com", SessionKey: "skey-1", UserRole: store.RoleUser}
		users := new(MockPrincipalReader)
		users.On("ReadUserByID", context.Background(), u.UserID).Return(u, nil)
		svc := NewSessionService(store.NewSessionStore(time.Hour), users)
		s := svc.EnsureSession("")

		// act
		err1 := svc.Login(s.SessionID, u)
		err2 := svc.Login(s.SessionID, u)

		// assert
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		got, err := svc.CurrentUser(context.Background(), s.SessionID)
		assert.NoError(t, err)
		assert.Equal(t, u.UserID, got.UserID)
	})
	t.Run("success - logout demotes, a later login re-establishes", func(t *testing.T) {
		// arrange
		u := &store.User{UserID: 1, Email: "a@b.com", SessionKey: "skey-1", UserRole: store.RoleUser}
		users := new(MockPrincipalReader)
		users.On("ReadUserByID", context.Background(), u.UserID).Return(u, nil)
		svc := NewSessionService(store.NewSessionStore(time.Hour), users)
		s := svc.EnsureSession("")
		assert.NoError(t, svc.Login(s.SessionID, u))

		// act
		svc.Logout(s.SessionID)

		// assert
		got, err := svc.CurrentUser(context.Background(), s.SessionID)
		assert.NoError(t, err)
		assert.Nil(t, got)

		assert.NoError(t, svc.Login(s.SessionID, u))
		got, err = svc.CurrentUser(context.Background(), s.SessionID)
		assert.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestSessionService_CurrentUser(t *testing.T) {
	t.Run("success - anonymous session has no principal", func(t *testing.T) {
		// arrange
		svc := NewSessionService(store.NewSessionStore(time.Hour), new(MockPrincipalReader))
		s := svc.EnsureSession("")

		// act
		got, err := svc.CurrentUser(context.Background(), s.SessionID)

		// assert
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
	t.Run("success - deleted account demotes the session", func(t *testing.T) {
		// arrange
		u := &store.User{UserID: 1, Email: "a@b.com", SessionKey: "skey-1", UserRole: store.RoleUser}
		users := new(MockPrincipalReader)
		users.On("ReadUserByID", context.Background(), u.UserID).Return(nil, sql.ErrNoRows)
		svc := NewSessionService(store.NewSessionStore(time.Hour), users)
		s := svc.EnsureSession("")
		assert.NoError(t, svc.Login(s.SessionID, u))

		// act
		got, err := svc.CurrentUser(context.Background(), s.SessionID)

		// assert
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
	t.Run("success - rotated session key kills the session", func(t *testing.T) {
		// arrange
		u := &store.User{UserID: 1, Email: "a@b.com", SessionKey: "skey-1", UserRole: store.RoleUser}
		users := new(MockPrincipalReader)
		rotated := *u
		rotated.SessionKey = "skey-2"
		users.On("ReadUserByID", context.Background(), u.UserID).Return(&rotated, nil)
		svc := NewSessionService(store.NewSessionStore(time.Hour), users)
		s := svc.EnsureSession("")
		assert.NoError(t, svc.Login(s.SessionID, u))

		// act
		got, err := svc.CurrentUser(context.Background(), s.SessionID)

		// assert
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
