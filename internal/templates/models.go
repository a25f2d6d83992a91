package templates

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Category groups page templates in the picker.
type Category struct {
	bun.BaseModel `bun:"table:template_categories,alias:tc"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Code        string    `bun:"code,notnull,unique" json:"code"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description *string   `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Template is a stored starting document for new projects.
type Template struct {
	bun.BaseModel `bun:"table:page_templates,alias:ptpl"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CategoryID   uuid.UUID `bun:"category_id,notnull,type:uuid" json:"category_id"`
	Code         string    `bun:"code,notnull" json:"code"`
	Name         string    `bun:"name,notnull" json:"name"`
	Description  *string   `bun:"description" json:"description,omitempty"`
	ThumbnailURL *string   `bun:"thumbnail_url" json:"thumbnail_url,omitempty"`
	Document     []byte    `bun:"document,notnull" json:"document"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CreateCategoryInput describes a new category. Code is derived from Name
// when empty.
type CreateCategoryInput struct {
	Code        string  `yaml:"code"`
	Name        string  `yaml:"name"`
	Description *string `yaml:"description"`
}

// CreateTemplateInput describes a new template. Document is the raw JSON
// of a full site document.
type CreateTemplateInput struct {
	CategoryID   uuid.UUID
	Code         string
	Name         string
	Description  *string
	ThumbnailURL *string
	Document     []byte
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	cloned := strings.Clone(*value)
	return &cloned
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func cloneCategory(src *Category) *Category {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Description = cloneString(src.Description)
	return &cloned
}

func cloneTemplate(src *Template) *Template {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Description = cloneString(src.Description)
	cloned.ThumbnailURL = cloneString(src.ThumbnailURL)
	cloned.Document = append([]byte(nil), src.Document...)
	return &cloned
}
