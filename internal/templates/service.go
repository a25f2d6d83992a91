package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-pagebuilder/site"
)

// Service manages the template catalog and turns templates into documents.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryByCode(ctx context.Context, code string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateTemplate(ctx context.Context, input CreateTemplateInput) (*Template, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context, categoryID uuid.UUID) ([]*Template, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	Instantiate(ctx context.Context, templateID uuid.UUID) (site.Site, error)
}

var (
	ErrFeatureDisabled            = errors.New("templates: feature disabled")
	ErrCategoryRepositoryRequired = errors.New("templates: category repository required")
	ErrTemplateRepositoryRequired = errors.New("templates: template repository required")

	ErrCategoryNameRequired = errors.New("templates: category name required")
	ErrCategoryCodeInvalid  = errors.New("templates: category code invalid")
	ErrCategoryExists       = errors.New("templates: category already exists")
	ErrCategoryNotFound     = errors.New("templates: category not found")

	ErrTemplateNameRequired    = errors.New("templates: template name required")
	ErrTemplateCodeInvalid     = errors.New("templates: template code invalid")
	ErrTemplateExists          = errors.New("templates: template already exists in category")
	ErrTemplateNotFound        = errors.New("templates: template not found")
	ErrTemplateDocumentInvalid = errors.New("templates: template document invalid")
)

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithNow overrides the time source.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	categories CategoryRepository
	templates  TemplateRepository
	now        func() time.Time
	logger     interfaces.Logger
}

// NewService constructs a template catalog service.
func NewService(categoryRepo CategoryRepository, templateRepo TemplateRepository, opts ...ServiceOption) Service {
	if categoryRepo == nil {
		panic(ErrCategoryRepositoryRequired)
	}
	if templateRepo == nil {
		panic(ErrTemplateRepositoryRequired)
	}

	s := &service{
		categories: categoryRepo,
		templates:  templateRepo,
		now:        time.Now,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	code, err := normalizeCode(input.Code, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryCodeInvalid, err)
	}

	if existing, err := s.categories.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, ErrCategoryExists
	} else if err != nil && !isNotFound(err) {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.categories.Create(ctx, &Category{
		ID:          identity.TemplateCategoryUUID(code),
		Code:        code,
		Name:        name,
		Description: trimmedOrNil(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.WithContext(ctx).Info("templates.category.created", "code", code)
	return cloneCategory(created), nil
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	if id == uuid.Nil {
		return nil, ErrCategoryNotFound
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, ErrCategoryNotFound)
	}
	return cloneCategory(category), nil
}

func (s *service) GetCategoryByCode(ctx context.Context, code string) (*Category, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCategoryNotFound
	}
	category, err := s.categories.GetByCode(ctx, code)
	if err != nil {
		return nil, translateRepoError(err, ErrCategoryNotFound)
	}
	return cloneCategory(category), nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory removes the category and every template filed under it.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	owned, err := s.templates.ListByCategory(ctx, id)
	if err != nil {
		return err
	}
	for _, tpl := range owned {
		if err := s.templates.Delete(ctx, tpl.ID); err != nil && !isNotFound(err) {
			return err
		}
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return translateRepoError(err, ErrCategoryNotFound)
	}
	s.logger.WithContext(ctx).Info("templates.category.deleted", "category_id", id.String(), "templates", len(owned))
	return nil
}

func (s *service) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*Template, error) {
	category, err := s.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTemplateNameRequired
	}
	code, err := normalizeCode(input.Code, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateCodeInvalid, err)
	}
	if err := documents.ValidateDocument(input.Document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateDocumentInvalid, err)
	}

	id := identity.PageTemplateUUID(category.ID, code)
	if existing, err := s.templates.GetByID(ctx, id); err == nil && existing != nil {
		return nil, ErrTemplateExists
	} else if err != nil && !isNotFound(err) {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.templates.Create(ctx, &Template{
		ID:           id,
		CategoryID:   category.ID,
		Code:         code,
		Name:         name,
		Description:  trimmedOrNil(input.Description),
		ThumbnailURL: trimmedOrNil(input.ThumbnailURL),
		Document:     append([]byte(nil), input.Document...),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	logging.WithFields(s.logger, map[string]any{logging.FieldTemplateID: id.String()}).
		WithContext(ctx).Info("templates.template.created", "category", category.Code, "code", code)
	return cloneTemplate(created), nil
}

func (s *service) GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error) {
	if id == uuid.Nil {
		return nil, ErrTemplateNotFound
	}
	tpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, ErrTemplateNotFound)
	}
	return cloneTemplate(tpl), nil
}

// ListTemplates lists the templates of one category, or all templates when
// categoryID is uuid.Nil.
func (s *service) ListTemplates(ctx context.Context, categoryID uuid.UUID) ([]*Template, error) {
	if categoryID == uuid.Nil {
		return s.templates.ListAll(ctx)
	}
	return s.templates.ListByCategory(ctx, categoryID)
}

func (s *service) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return translateRepoError(err, ErrTemplateNotFound)
	}
	return nil
}

// Instantiate decodes the stored document of a template. Any well-formed
// document is accepted.
func (s *service) Instantiate(ctx context.Context, templateID uuid.UUID) (site.Site, error) {
	tpl, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return site.Site{}, err
	}
	doc, err := documents.Deserialize(tpl.Document)
	if err != nil {
		return site.Site{}, fmt.Errorf("%w: %w", ErrTemplateDocumentInvalid, err)
	}
	return doc, nil
}

func normalizeCode(code, fallback string) (string, error) {
	source := strings.TrimSpace(code)
	if source == "" {
		source = fallback
	}
	normalized, err := slug.Normalize(source)
	if err != nil {
		return "", err
	}
	if normalized == "" || !slug.IsValid(normalized) {
		return "", fmt.Errorf("%q does not produce a valid code", source)
	}
	return normalized, nil
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func translateRepoError(err error, fallback error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return fallback
	}
	return err
}
