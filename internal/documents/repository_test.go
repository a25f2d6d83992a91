package documents_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
)

func exerciseRepository(t *testing.T, repo documents.Repository) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "proj-a"); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty store, got %v", err)
	}

	created, err := repo.Save(ctx, "proj-a", []byte(`{"v":1}`))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if created.ID != identity.ProjectDocumentUUID("proj-a") {
		t.Fatalf("expected deterministic record id, got %s", created.ID)
	}

	if _, err := repo.Save(ctx, "proj-a", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}
	if _, err := repo.Save(ctx, "proj-b", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Save proj-b returned error: %v", err)
	}

	record, err := repo.Get(ctx, "proj-a")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(record.Document) != `{"v":2}` {
		t.Fatalf("expected latest snapshot, got %s", record.Document)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 2 || records[0].ProjectID != "proj-a" || records[1].ProjectID != "proj-b" {
		t.Fatalf("expected proj-a and proj-b, got %d records", len(records))
	}

	if err := repo.Delete(ctx, "proj-a"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.Get(ctx, "proj-a"); !documents.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "proj-a"); !documents.IsNotFound(err) {
		t.Fatalf("expected not found deleting twice, got %v", err)
	}

	if _, err := repo.Save(ctx, "  ", nil); !errors.Is(err, documents.ErrProjectIDRequired) {
		t.Fatalf("expected ErrProjectIDRequired, got %v", err)
	}
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, documents.NewMemoryRepository())
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := documents.NewMemoryRepository()
	ctx := context.Background()
	record, err := repo.Save(ctx, "proj", []byte("abc"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	record.Document[0] = 'z'

	stored, err := repo.Get(ctx, "proj")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(stored.Document) != "abc" {
		t.Fatalf("expected stored document to be isolated, got %s", stored.Document)
	}
}

func TestBunRepository(t *testing.T) {
	db := testsupport.NewBunDB(t, (*documents.Record)(nil))
	exerciseRepository(t, documents.NewBunRepository(db))
}

func TestBunRepositoryWithCache(t *testing.T) {
	db := testsupport.NewBunDB(t, (*documents.Record)(nil))
	cfg := repocache.DefaultConfig()
	cfg.TTL = time.Minute
	svc, err := repocache.NewCacheService(cfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	repo := documents.NewBunRepositoryWithCache(db, svc, repocache.NewDefaultKeySerializer())
	ctx := context.Background()

	if _, err := repo.Save(ctx, "proj-cache", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	first, err := repo.Get(ctx, "proj-cache")
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	second, err := repo.Get(ctx, "proj-cache")
	if err != nil {
		t.Fatalf("cached get: %v", err)
	}
	if first.ID != second.ID || string(second.Document) != `{"v":1}` {
		t.Fatalf("expected cached record to match, got %s", second.Document)
	}
	if err := repo.InvalidateCache(ctx); err != nil {
		t.Fatalf("InvalidateCache returned error: %v", err)
	}
}
