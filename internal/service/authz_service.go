package service

import (
	"context"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/haapio/accounts/internal/store"
)

type GrantReader interface {
	ListGrants(ctx context.Context) ([]store.Grant, error)
}

type GrantWriter interface {
	ReplaceGrants(ctx context.Context, grants []store.Grant) error
}

// Authorizer answers permission-membership queries against the
// role -> permission-set catalog. The catalog is built once at startup
// and read-only afterwards, so no locking is needed.
type Authorizer struct {
	groups map[store.Role]map[store.Permission]struct{}
}

// NewAuthorizer loads the whole catalog with a single query and groups
// it by role.
func NewAuthorizer(ctx context.Context, grants GrantReader) (*Authorizer, error) {
	rows, err := grants.ListGrants(ctx)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	groups := make(map[store.Role]map[store.Permission]struct{})
	for _, g := range rows {
		set, ok := groups[g.UserRole]
		if !ok {
			set = make(map[store.Permission]struct{})
			groups[g.UserRole] = set
		}
		set[g.Permission] = struct{}{}
	}
	return &Authorizer{groups: groups}, nil
}

// PermissionsFor is total: a role without catalog rows gets the empty
// set, never an error. The acting user's id plays no part; grants are
// role-granular.
func (a *Authorizer) PermissionsFor(role store.Role) []store.Permission {
	set, ok := a.groups[role]
	if !ok {
		return []store.Permission{}
	}
	perms := make([]store.Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

func (a *Authorizer) Has(role store.Role, perm store.Permission) bool {
	set, ok := a.groups[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// LoadGrantsFile reads a role -> permission list mapping, e.g.
//
//	admin:
//	  - read
//	  - delete_user
//	staff:
//	  - read
func LoadGrantsFile(path string) ([]store.Grant, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	grants := make([]store.Grant, 0)
	for roleName, permNames := range raw {
		role, err := store.ParseRole(roleName)
		if err != nil {
			return nil, err
		}
		for _, permName := range permNames {
			perm, err := store.ParsePermission(permName)
			if err != nil {
				return nil, err
			}
			grants = append(grants, store.Grant{UserRole: role, Permission: perm})
		}
	}
	return grants, nil
}

// ReplaceGrantsFromFile overwrites the stored catalog with the file's
// grants. Called before the Authorizer is built; the catalog stays
// immutable for the rest of the process lifetime.
func ReplaceGrantsFromFile(ctx context.Context, grants GrantWriter, path string) error {
	parsed, err := LoadGrantsFile(path)
	if err != nil {
		return err
	}
	if err := grants.ReplaceGrants(ctx, parsed); err != nil {
		return wrapStoreError(err)
	}
	return nil
}
