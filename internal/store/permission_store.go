package store

import (
	"context"
)

// Grant is one (role, permission) row of the permission catalog.
type Grant struct {
	UserRole   Role       `yaml:"role"`
	Permission Permission `yaml:"permission"`
}

type PermissionStore interface {
	ListGrants(ctx context.Context) ([]Grant, error)
	ReplaceGrants(ctx context.Context, grants []Grant) error
}
