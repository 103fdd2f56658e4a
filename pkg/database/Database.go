package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	_ "github.com/glebarez/sqlite"
	"github.com/rfberaldo/sqlz"
	"github.com/rfberaldo/sqlz/binds"
)

//go:embed sql-migrations
var sqlMigrationsFs embed.FS

func init() {
	binds.Register("sqlite", binds.BindByDriver("sqlite3"))
}

/*
Connect opens the album database and applies any migration scripts.
*/
func Connect(dsn string) (*sqlz.DB, error) {
	var (
		err error
		db  *sqlz.DB
	)

	if db, err = sqlz.Connect("sqlite", dsn); err != nil {
		return nil, fmt.Errorf("error connecting to database '%s': %w", dsn, err)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

/*
Migrate runs every embedded script whose name starts with "commit", in
directory order.
*/
func Migrate(db *sqlz.DB) error {
	var (
		err  error
		dirs []fs.DirEntry
		b    []byte
	)

	if dirs, err = sqlMigrationsFs.ReadDir("sql-migrations"); err != nil {
		return fmt.Errorf("error reading migrations: %w", err)
	}

	for _, d := range dirs {
		if d.IsDir() {
			continue
		}

		if strings.HasPrefix(d.Name(), "commit") {
			if b, err = fs.ReadFile(sqlMigrationsFs, path.Join("sql-migrations", d.Name())); err != nil {
				return fmt.Errorf("error reading migration '%s': %w", d.Name(), err)
			}

			if err = runSqlScript(db, b); err != nil {
				if !isIgnorableError(err) {
					return fmt.Errorf("error running migration '%s': %w", d.Name(), err)
				}
			}

			slog.Debug("applied migration", "name", d.Name())
		}
	}

	return nil
}

func runSqlScript(db *sqlz.DB, script []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, err := db.Exec(ctx, string(script))
	return err
}

func isIgnorableError(err error) bool {
	msg := err.Error()

	if strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists") {
		return true
	}

	return false
}
