//go:build cgo_sqlite

package config

// CGO SQLite through mattn/go-sqlite3.
//
// Build command:
//   CGO_ENABLED=1 go build -tags cgo_sqlite ./...

import (
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteBuildMode describes which SQLite driver was compiled in
const SQLiteBuildMode = "cgo"

func sqliteDialector(path string) gorm.Dialector {
	return sqlite.Open(sqliteDSN(path))
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=1&_busy_timeout=5000"
}
