package testsupport

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// NewSQLiteMemoryDB opens a shared in-memory sqlite database.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewBunDB returns a bun handle over a fresh in-memory sqlite database and
// closes it when the test ends. Models are created before returning.
func NewBunDB(t testing.TB, models ...any) *bun.DB {
	t.Helper()
	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	for _, model := range models {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(t.Context()); err != nil {
			t.Fatalf("drop table: %v", err)
		}
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(t.Context()); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}
