package store

import (
	"context"
)

type UserStore interface {
	CreateUser(ctx context.Context, role Role, sessionKey, email, passwordHash string) (*User, error)
	ReadUserByID(ctx context.Context, userID int64) (*User, error)
	ReadUserByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateUserSessionKey(ctx context.Context, userID int64, sessionKey string) error
	UpdateUserRole(ctx context.Context, userID int64, role Role) error
	DeleteUser(ctx context.Context, userID int64) error
	ListUsers(ctx context.Context) ([]*User, error)
	ListUsersByRole(ctx context.Context, role Role) ([]User, error)
}
