package templates

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryCategoryRepository provides an in-memory CategoryRepository.
type MemoryCategoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Category
	byCode map[string]uuid.UUID
}

// NewMemoryCategoryRepository constructs an empty memory-backed category repository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		byID:   make(map[uuid.UUID]*Category),
		byCode: make(map[string]uuid.UUID),
	}
}

func (r *MemoryCategoryRepository) Create(_ context.Context, category *Category) (*Category, error) {
	cloned := cloneCategory(category)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[cloned.ID] = cloned
	r.byCode[cloned.Code] = cloned.ID
	return cloneCategory(cloned), nil
}

func (r *MemoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "template category", Key: id.String()}
	}
	return cloneCategory(record), nil
}

func (r *MemoryCategoryRepository) GetByCode(_ context.Context, code string) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return nil, &NotFoundError{Resource: "template category", Key: code}
	}
	return cloneCategory(r.byID[id]), nil
}

func (r *MemoryCategoryRepository) List(_ context.Context) ([]*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Category, 0, len(r.byID))
	for _, record := range r.byID {
		out = append(out, cloneCategory(record))
	}
	slices.SortFunc(out, func(a, b *Category) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *MemoryCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.byID[id]
	if !ok {
		return &NotFoundError{Resource: "template category", Key: id.String()}
	}
	delete(r.byCode, record.Code)
	delete(r.byID, id)
	return nil
}

// MemoryTemplateRepository provides an in-memory TemplateRepository.
type MemoryTemplateRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Template
}

// NewMemoryTemplateRepository constructs an empty memory-backed template repository.
func NewMemoryTemplateRepository() *MemoryTemplateRepository {
	return &MemoryTemplateRepository{
		byID: make(map[uuid.UUID]*Template),
	}
}

func (r *MemoryTemplateRepository) Create(_ context.Context, template *Template) (*Template, error) {
	cloned := cloneTemplate(template)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[cloned.ID] = cloned
	return cloneTemplate(cloned), nil
}

func (r *MemoryTemplateRepository) GetByID(_ context.Context, id uuid.UUID) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page template", Key: id.String()}
	}
	return cloneTemplate(record), nil
}

func (r *MemoryTemplateRepository) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]*Template, error) {
	return r.filter(func(tpl *Template) bool { return tpl.CategoryID == categoryID }), nil
}

func (r *MemoryTemplateRepository) ListAll(_ context.Context) ([]*Template, error) {
	return r.filter(func(*Template) bool { return true }), nil
}

func (r *MemoryTemplateRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return &NotFoundError{Resource: "page template", Key: id.String()}
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryTemplateRepository) filter(keep func(*Template) bool) []*Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Template, 0, len(r.byID))
	for _, record := range r.byID {
		if keep(record) {
			out = append(out, cloneTemplate(record))
		}
	}
	slices.SortFunc(out, func(a, b *Template) int { return strings.Compare(a.Name, b.Name) })
	return out
}
