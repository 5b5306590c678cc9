package store

import (
	"database/sql"
	"log"

	assets "github.com/haapio/accounts"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded sqlite migrations. Postgres
// deployments own their schema externally and never call this.
func RunMigrations(db *sql.DB, dir string) {
	goose.SetBaseFS(assets.MigrationsFS)
	if err := goose.SetDialect("sqlite"); err != nil {
		log.Fatal(err)
	}
	if err := goose.Up(db, dir); err != nil {
		log.Fatal(err)
	}
}
