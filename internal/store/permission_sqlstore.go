package store

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type PermissionSQLStore struct {
	rdb  *sql.DB
	rwdb *sql.DB
}

func NewPermissionSQLStore(rdb, rwdb *sql.DB) *PermissionSQLStore {
	return &PermissionSQLStore{rdb, rwdb}
}

func (store *PermissionSQLStore) ListGrants(ctx context.Context) ([]Grant, error) {
	grants := make([]Grant, 0)
	err := sqlscan.Select(
		ctx, store.rdb, &grants,
		`select user_role, permission from user_groups order by user_role, permission`,
	)
	return grants, err
}

func (store *PermissionSQLStore) ReplaceGrants(ctx context.Context, grants []Grant) error {
	tx, err := store.rwdb.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `delete from user_groups`); err != nil {
		return err
	}
	for _, g := range grants {
		if _, err := tx.ExecContext(
			ctx,
			`insert into user_groups (user_role, permission) values ($1, $2)`,
			g.UserRole, g.Permission,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
