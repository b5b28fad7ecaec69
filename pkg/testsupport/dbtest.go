package testsupport

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// NewBunSQLiteDB opens an in-memory sqlite database wrapped with bun. Each
// distinct name gets its own database; a blank name shares the default one.
func NewBunSQLiteDB(name string) (*bun.DB, error) {
	dsn := "file::memory:?cache=shared"
	if name = strings.TrimSpace(name); name != "" {
		dsn = "file:" + name + "?mode=memory&cache=shared"
	}
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db, nil
}
