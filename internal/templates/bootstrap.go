package templates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// CategorySeed describes a category and its templates for bootstrapping.
type CategorySeed struct {
	Category  CreateCategoryInput `yaml:",inline"`
	Templates []TemplateSeed      `yaml:"templates"`
}

// TemplateSeed is a template entry of a seed file. Document holds the JSON
// document inline.
type TemplateSeed struct {
	Code         string  `yaml:"code"`
	Name         string  `yaml:"name"`
	Description  *string `yaml:"description"`
	ThumbnailURL *string `yaml:"thumbnail_url"`
	Document     string  `yaml:"document"`
}

type seedFile struct {
	Categories []CategorySeed `yaml:"categories"`
}

// LoadSeedFile reads category seeds from a YAML file.
func LoadSeedFile(path string) ([]CategorySeed, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("templates: open seed file: %w", err)
	}
	defer file.Close()
	return DecodeSeeds(file)
}

// DecodeSeeds parses category seeds from YAML.
func DecodeSeeds(r io.Reader) ([]CategorySeed, error) {
	var parsed seedFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&parsed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("templates: decode seeds: %w", err)
	}
	return parsed.Categories, nil
}

// Bootstrap applies seeds to svc. Categories and templates that already
// exist are kept as they are.
func Bootstrap(ctx context.Context, svc Service, seeds []CategorySeed) error {
	for _, seed := range seeds {
		category, err := svc.CreateCategory(ctx, seed.Category)
		if err != nil {
			if !errors.Is(err, ErrCategoryExists) {
				return err
			}
			code, err := normalizeCode(seed.Category.Code, seed.Category.Name)
			if err != nil {
				return err
			}
			category, err = svc.GetCategoryByCode(ctx, code)
			if err != nil {
				return err
			}
		}

		for _, tpl := range seed.Templates {
			_, err := svc.CreateTemplate(ctx, CreateTemplateInput{
				CategoryID:   category.ID,
				Code:         tpl.Code,
				Name:         tpl.Name,
				Description:  tpl.Description,
				ThumbnailURL: tpl.ThumbnailURL,
				Document:     []byte(tpl.Document),
			})
			if err != nil && !errors.Is(err, ErrTemplateExists) {
				return fmt.Errorf("templates: seed %s/%s: %w", category.Code, tpl.Name, err)
			}
		}
	}
	return nil
}
