package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "pagebuilder.db")

	db, err := Open(ctx, runtimeconfig.DriverSQLite, dsn, DefaultOptions())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("second Migrate returned error: %v", err)
	}

	repo := documents.NewBunRepository(db)
	if _, err := repo.Save(ctx, "proj", []byte(`{"pages":[{"id":"p","name":"P","blocks":[]}]}`)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	record, err := repo.Get(ctx, "proj")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if record.ProjectID != "proj" {
		t.Fatalf("expected project proj, got %q", record.ProjectID)
	}
}

func TestOpenRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, runtimeconfig.DriverSQLite, " ", DefaultOptions()); !errors.Is(err, ErrDSNRequired) {
		t.Fatalf("expected ErrDSNRequired, got %v", err)
	}
	if _, err := Open(ctx, "oracle", "dsn", DefaultOptions()); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}
