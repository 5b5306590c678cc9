package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/haapio/accounts/internal/store"
)

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Has(role store.Role, perm store.Permission) bool {
	args := m.Called(role, perm)
	return args.Bool(0)
}

func (m *MockAuthorizer) PermissionsFor(role store.Role) []store.Permission {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]store.Permission)
}
