package store

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type UserSQLStore struct {
	rdb  *sql.DB
	rwdb *sql.DB
}

func NewUserSQLStore(rdb, rwdb *sql.DB) *UserSQLStore {
	return &UserSQLStore{rdb, rwdb}
}

func (store *UserSQLStore) CreateUser(
	ctx context.Context,
	role Role,
	sessionKey string,
	email string,
	passwordHash string,
) (*User, error) {
	user := new(User)
	user.UserRole = role
	user.SessionKey = sessionKey
	user.Email = email
	user.PasswordHash = passwordHash
	err := sqlscan.Get(
		ctx, store.rwdb, user,
		`
		insert into users (
			session_key,
			email,
			user_role,
			password_hash
		)
		values ($1, $2, $3, $4)
		returning user_id, created_at, updated_at
		`,
		user.SessionKey,
		user.Email,
		user.UserRole,
		user.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (store *UserSQLStore) ReadUserByID(ctx context.Context, userID int64) (*User, error) {
	user := new(User)
	err := sqlscan.Get(
		ctx, store.rdb, user,
		`select * from users where user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (store *UserSQLStore) ReadUserByEmail(ctx context.Context, email string) (*User, error) {
	user := new(User)
	err := sqlscan.Get(
		ctx, store.rdb, user,
		`select * from users where email = $1`,
		email,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (store *UserSQLStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := store.rdb.QueryRowContext(
		ctx,
		`select exists (select 1 from users where email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

func (store *UserSQLStore) UpdateUserPassword(
	ctx context.Context,
	userID int64,
	passwordHash string,
) error {
	_, err := store.rwdb.ExecContext(
		ctx,
		`update users
		set password_hash = $1,
			updated_at = current_timestamp
		where user_id = $2`,
		passwordHash, userID,
	)
	return err
}

func (store *UserSQLStore) UpdateUserSessionKey(
	ctx context.Context,
	userID int64,
	sessionKey string,
) error {
	_, err := store.rwdb.ExecContext(
		ctx,
		`update users
		set session_key = $1,
			updated_at = current_timestamp
		where user_id = $2`,
		sessionKey, userID,
	)
	return err
}

func (store *UserSQLStore) UpdateUserRole(
	ctx context.Context,
	userID int64,
	role Role,
) error {
	_, err := store.rwdb.ExecContext(
		ctx,
		`update users
		set user_role = $1,
			updated_at = current_timestamp
		where user_id = $2`,
		role, userID,
	)
	return err
}

func (store *UserSQLStore) DeleteUser(ctx context.Context, userID int64) error {
	_, err := store.rwdb.ExecContext(ctx, `delete from users where user_id = $1`, userID)
	return err
}

func (store *UserSQLStore) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := sqlscan.Select(
		ctx, store.rdb, &users,
		`select * from users order by email`,
	)
	return users, err
}

func (store *UserSQLStore) ListUsersByRole(ctx context.Context, role Role) ([]User, error) {
	users := make([]User, 0)
	err := sqlscan.Select(
		ctx, store.rdb, &users,
		`select * from users where user_role = $1 order by email`,
		role,
	)
	return users, err
}
