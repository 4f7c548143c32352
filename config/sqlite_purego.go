//go:build !cgo_sqlite

package config

// Pure Go SQLite (modernc.org/sqlite through glebarez/sqlite), no C compiler
// required. Build with -tags cgo_sqlite to switch to mattn/go-sqlite3.

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// SQLiteBuildMode describes which SQLite driver was compiled in
const SQLiteBuildMode = "purego"

func sqliteDialector(path string) gorm.Dialector {
	return sqlite.Open(sqliteDSN(path))
}

// sqliteDSN turns on foreign keys and a busy timeout for the connection
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
