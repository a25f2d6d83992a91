package templates

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/site"
)

type noopService struct{}

// NewNoOpService returns a Service that rejects every call with
// ErrFeatureDisabled.
func NewNoOpService() Service {
	return noopService{}
}

func (noopService) CreateCategory(context.Context, CreateCategoryInput) (*Category, error) {
	return nil, ErrFeatureDisabled
}

func (noopService) GetCategory(context.Context, uuid.UUID) (*Category, error) {
	return nil, ErrFeatureDisabled
}

func (noopService) GetCategoryByCode(context.Context, string) (*Category, error) {
	return nil, ErrFeatureDisabled
}

func (noopService) ListCategories(context.Context) ([]*Category, error) {
	return nil, ErrFeatureDisabled
}

func (noopService) DeleteCategory(context.Context, uuid.UUID) error {
	return ErrFeatureDisabled
}

func (noopService) CreateTemplate(context.Context, CreateTemplateInput) (*Template, error) {
	return nil, ErrFeatureDisabled
}

func (noopService) GetTemplate(context.Context, uuid.UUID) (*Template, error) {
	return nil, ErrFeatureDisabled
}

func (noopService) ListTemplates(context.Context, uuid.UUID) ([]*Template, error) {
	return nil, ErrFeatureDisabled
}

func (noopService) DeleteTemplate(context.Context, uuid.UUID) error {
	return ErrFeatureDisabled
}

func (noopService) Instantiate(context.Context, uuid.UUID) (site.Site, error) {
	return site.Site{}, ErrFeatureDisabled
}
