package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/haapio/accounts/internal/security"
	"github.com/haapio/accounts/internal/store"
)

type UserWriter interface {
	CreateUser(ctx context.Context, role store.Role, sessionKey, email, passwordHash string) (*store.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateUserSessionKey(ctx context.Context, userID int64, sessionKey string) error
	UpdateUserRole(ctx context.Context, userID int64, role store.Role) error
	DeleteUser(ctx context.Context, userID int64) error
}

type UserReader interface {
	ReadUserByID(ctx context.Context, userID int64) (*store.User, error)
	ReadUserByEmail(ctx context.Context, email string) (*store.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]*store.User, error)
	ListUsersByRole(ctx context.Context, role store.Role) ([]store.User, error)
}

type UserStore interface {
	UserWriter
	UserReader
}

// UserService is the user directory and the authenticator in one: it
// owns every path that touches a password hash.
type UserService struct {
	userStore UserStore
}

func NewUserService(s UserStore) *UserService {
	return &UserService{userStore: s}
}

// Authenticate validates a credential pair and returns the verified
// principal without its hash. One directory lookup and at most one hash
// verification per call.
func (s *UserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*store.User, error) {
	u, err := s.userStore.ReadUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewNotFound("user")
		}
		return nil, wrapStoreError(err)
	}
	if err := security.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, NewAuthError(MsgInvalidPassword, err)
		}
		// a hash that no longer parses is a data problem, not user error
		return nil, NewInternal(err)
	}
	return u.Sanitized(), nil
}

// CreateUser registers a new account with the default role. A
// uniqueness conflict on the email surfaces as DuplicateUser.
func (s *UserService) CreateUser(
	ctx context.Context,
	email, password string,
) (*store.User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, NewInternal(err)
	}
	u, err := s.userStore.CreateUser(ctx, store.RoleUser, uuid.NewString(), email, hash)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	return u.Sanitized(), nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*store.User, error) {
	u, err := s.userStore.ReadUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewNotFound("user")
		}
		return nil, wrapStoreError(err)
	}
	return u, nil
}

// EmailAvailable reports whether no account uses the email yet.
func (s *UserService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	if err := ValidateEmail(email); err != nil {
		return false, err
	}
	exists, err := s.userStore.EmailExists(ctx, email)
	if err != nil {
		return false, wrapStoreError(err)
	}
	return !exists, nil
}

// ChangePassword verifies the old password before writing the new hash.
// The per-user session key is left alone, so existing sessions for the
// user stay valid after the change.
func (s *UserService) ChangePassword(
	ctx context.Context,
	userID int64,
	oldPassword, newPassword string,
) error {
	u, err := s.userStore.ReadUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewNotFound("user")
		}
		return wrapStoreError(err)
	}
	if err := security.VerifyPassword(oldPassword, u.PasswordHash); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return NewAuthError(MsgInvalidPassword, err)
		}
		return NewInternal(err)
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	newHash, err := security.HashPassword(newPassword)
	if err != nil {
		return NewInternal(err)
	}
	if err := s.userStore.UpdateUserPassword(ctx, u.UserID, newHash); err != nil {
		return wrapStoreError(err)
	}
	return nil
}

// RotateSessionKey replaces the user's per-user session secret, which
// invalidates every session currently bound to the user.
func (s *UserService) RotateSessionKey(ctx context.Context, userID int64) error {
	if err := s.userStore.UpdateUserSessionKey(ctx, userID, uuid.NewString()); err != nil {
		return wrapStoreError(err)
	}
	return nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, userID int64, role store.Role) error {
	if err := s.userStore.UpdateUserRole(ctx, userID, role); err != nil {
		return wrapStoreError(err)
	}
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userStore.DeleteUser(ctx, userID); err != nil {
		return wrapStoreError(err)
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*store.User, error) {
	users, err := s.userStore.ListUsers(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, wrapStoreError(err)
	}
	for i, u := range users {
		users[i] = u.Sanitized()
	}
	return users, nil
}

// InitializeAdmin prompts for a first admin account when none exists.
func (s *UserService) InitializeAdmin(ctx context.Context) {
	admins, err := s.userStore.ListUsersByRole(ctx, store.RoleAdmin)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Fatal(err)
	}
	if len(admins) > 0 {
		return
	}

	fmt.Println("Create an admin account")
	fmt.Print("Email: ")
	var email string
	if _, err := fmt.Scanln(&email); err != nil {
		log.Fatal(err)
	}
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println()

	hash, err := security.HashPassword(string(passwordBytes))
	if err != nil {
		log.Fatal(err)
	}
	if _, err := s.userStore.CreateUser(
		ctx, store.RoleAdmin, uuid.NewString(), email, hash,
	); err != nil {
		log.Fatal(err)
	}
}
