package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-pagebuilder/internal/identity"
)

const documentNamespace = "project_document"

// BunRepository stores documents in the project_documents table.
type BunRepository struct {
	repo         repository.Repository[*Record]
	cacheService cache.CacheService
	cachePrefix  string
	now          func() time.Time
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository creates a document repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a document repository with caching services.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = documentNamespace + cache.KeySeparator
	}
	return &BunRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
		now:          time.Now,
	}
}

func (r *BunRepository) Get(ctx context.Context, projectID string) (*Record, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}
	record, err := r.repo.GetByIdentifier(ctx, projectID)
	if err != nil {
		return nil, mapRepositoryError(err, projectID)
	}
	return record, nil
}

func (r *BunRepository) Save(ctx context.Context, projectID string, document []byte) (*Record, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}

	now := r.now().UTC()
	existing, err := r.Get(ctx, projectID)
	switch {
	case err == nil:
		existing.Document = append([]byte(nil), document...)
		existing.UpdatedAt = now
		updated, err := r.repo.Update(ctx, existing,
			repository.UpdateByID(existing.ID.String()),
			repository.UpdateColumns("document", "updated_at"),
		)
		if err != nil {
			return nil, mapRepositoryError(err, projectID)
		}
		return updated, r.InvalidateCache(ctx)
	case IsNotFound(err):
		created, err := r.repo.Create(ctx, &Record{
			ID:        identity.ProjectDocumentUUID(projectID),
			ProjectID: projectID,
			Document:  append([]byte(nil), document...),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, mapRepositoryError(err, projectID)
		}
		return created, r.InvalidateCache(ctx)
	default:
		return nil, err
	}
}

func (r *BunRepository) Delete(ctx context.Context, projectID string) error {
	record, err := r.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Record{ID: record.ID}); err != nil {
		return mapRepositoryError(err, projectID)
	}
	return r.InvalidateCache(ctx)
}

func (r *BunRepository) List(ctx context.Context) ([]*Record, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.project_id ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

// InvalidateCache drops cached document lookups.
func (r *BunRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

// IsNotFound reports whether err means no document is stored.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func mapRepositoryError(err error, projectID string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{ProjectID: projectID}
	}
	return fmt.Errorf("project document repository error: %w", err)
}
