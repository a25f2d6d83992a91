package templates

import (
	"context"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CategoryRepository exposes persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetByCode(ctx context.Context, code string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TemplateRepository exposes persistence operations for templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *Template) (*Template, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Template, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Template, error)
	ListAll(ctx context.Context) ([]*Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a catalog record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NewCategoryRepository creates the go-repository-bun repository for categories.
func NewCategoryRepository(db *bun.DB) repository.Repository[*Category] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Category]{
		NewRecord:          func() *Category { return &Category{} },
		GetID:              func(category *Category) uuid.UUID { return category.ID },
		SetID:              func(category *Category, id uuid.UUID) { category.ID = id },
		GetIdentifier:      func() string { return "code" },
		GetIdentifierValue: func(category *Category) string { return category.Code },
	})
}

// NewTemplateRepository creates the go-repository-bun repository for templates.
func NewTemplateRepository(db *bun.DB) repository.Repository[*Template] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Template]{
		NewRecord:          func() *Template { return &Template{} },
		GetID:              func(tpl *Template) uuid.UUID { return tpl.ID },
		SetID:              func(tpl *Template, id uuid.UUID) { tpl.ID = id },
		GetIdentifier:      func() string { return "code" },
		GetIdentifierValue: func(tpl *Template) string { return tpl.Code },
	})
}
