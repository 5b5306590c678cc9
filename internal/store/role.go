package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role is the closed set of roles a user can hold. Exactly one per user.
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleStaff
	RoleUser
	RoleGuest
	RoleNaughty
)

// The enum <-> stored string mapping is maintained here, independent of
// any database driver's type system.
var roleNames = map[Role]string{
	RoleAdmin:   "admin",
	RoleStaff:   "staff",
	RoleUser:    "user",
	RoleGuest:   "guest",
	RoleNaughty: "naughty",
}

var rolesByName = map[string]Role{
	"admin":   RoleAdmin,
	"staff":   RoleStaff,
	"user":    RoleUser,
	"guest":   RoleGuest,
	"naughty": RoleNaughty,
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

func ParseRole(name string) (Role, error) {
	if r, ok := rolesByName[name]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

func (r Role) Value() (driver.Value, error) {
	name, ok := roleNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return name, nil
}

func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		role, err := ParseRole(v)
		if err != nil {
			return err
		}
		*r = role
		return nil
	case []byte:
		return r.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Role", src)
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	name, ok := roleNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return json.Marshal(name)
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	return r.Scan(name)
}

// Permission is the closed set of grants a role can carry.
type Permission int

const (
	DeleteUser Permission = iota + 1
	MarkAsNaughty
	PromoteOrDemoteUser
	EditUserPermissions
	Read
)

var permissionNames = map[Permission]string{
	DeleteUser:          "delete_user",
	MarkAsNaughty:       "mark_as_naughty",
	PromoteOrDemoteUser: "promote_or_demote_user",
	EditUserPermissions: "edit_user_permissions",
	Read:                "read",
}

var permissionsByName = map[string]Permission{
	"delete_user":            DeleteUser,
	"mark_as_naughty":        MarkAsNaughty,
	"promote_or_demote_user": PromoteOrDemoteUser,
	"edit_user_permissions":  EditUserPermissions,
	"read":                   Read,
}

func (p Permission) String() string {
	if name, ok := permissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("permission(%d)", int(p))
}

func ParsePermission(name string) (Permission, error) {
	if p, ok := permissionsByName[name]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown permission %q", name)
}

func (p Permission) Value() (driver.Value, error) {
	name, ok := permissionNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown permission %d", int(p))
	}
	return name, nil
}

func (p *Permission) Scan(src any) error {
	switch v := src.(type) {
	case string:
		perm, err := ParsePermission(v)
		if err != nil {
			return err
		}
		*p = perm
		return nil
	case []byte:
		return p.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Permission", src)
	}
}

func (p Permission) MarshalJSON() ([]byte, error) {
	name, ok := permissionNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown permission %d", int(p))
	}
	return json.Marshal(name)
}

func (p *Permission) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	return p.Scan(name)
}
