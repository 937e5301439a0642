package sqliteutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// IsRemote reports whether the path names a libsql server rather than a local file.
func IsRemote(path string) bool {
	for _, prefix := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// OpenDB opens a database at `path` and applies `schema` to it. Local files
// (and ":memory:") use the modernc sqlite driver, libsql/http urls use libsql.
func OpenDB(schema, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("a path was not specified")
	}

	var db *sql.DB
	var err error
	if IsRemote(path) {
		db, err = sql.Open("libsql", path)
		if err != nil {
			return nil, err
		}
	} else {
		db, err = openLocal(path)
		if err != nil {
			return nil, err
		}
	}

	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}

func openLocal(path string) (*sql.DB, error) {
	memory := path == ":memory:"
	if !memory {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps writers from failing with SQLITE_BUSY,
	// and keeps ":memory:" pointing at the same database.
	db.SetMaxOpenConns(1)
	if memory {
		return db, nil
	}
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
