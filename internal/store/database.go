package store

import (
	"database/sql"
	"log"
	"runtime"

	"github.com/haapio/accounts/internal/settings"
)

// InitDatabase opens the configured database. SQLite is the default,
// opened as a read/read-write connection pair; a postgres DSN switches
// to a pgx-backed pool.
func InitDatabase(readonly bool) *sql.DB {
	if settings.Settings.UsesPostgres() {
		db, err := sql.Open("pgx", settings.Settings.PostgresDSN)
		if err != nil {
			log.Fatal("fatal error opening postgres database: ", err)
		}
		db.SetMaxOpenConns(20)
		return db
	}

	db, err := sql.Open("sqlite", settings.Settings.SQLiteDbString(readonly))
	if err != nil {
		log.Fatal("fatal error opening sqlite database: ", err)
	}

	if readonly {
		db.SetMaxOpenConns(max(4, runtime.NumCPU()))
	} else {
		if _, err := db.Exec("PRAGMA temp_store=memory"); err != nil {
			log.Fatal(err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			log.Fatal(err)
		}
		db.SetMaxOpenConns(1)
	}

	return db
}
