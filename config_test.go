package pagebuilder_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder"
)

func TestConfigValidateRequiresDSNForBun(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Storage.Provider = "bun"
	if err := cfg.Validate(); !errors.Is(err, pagebuilder.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidatePageNameFormat(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Editor.NewPageNameFormat = "Página"
	if err := cfg.Validate(); !errors.Is(err, pagebuilder.ErrPageNameFormatInvalid) {
		t.Fatalf("expected ErrPageNameFormatInvalid, got %v", err)
	}
}

func TestConfigValidateSeedFileRequiresTemplates(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Features.Templates = false
	cfg.Templates.SeedFile = "templates.yaml"
	if err := cfg.Validate(); !errors.Is(err, pagebuilder.ErrTemplatesFeatureRequired) {
		t.Fatalf("expected ErrTemplatesFeatureRequired, got %v", err)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagebuilder.yaml")
	body := []byte("persistence:\n  save_debounce: 250ms\nfeatures:\n  metrics: true\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := pagebuilder.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Persistence.SaveDebounce != 250*time.Millisecond {
		t.Fatalf("expected 250ms debounce, got %v", cfg.Persistence.SaveDebounce)
	}
	if !cfg.Features.Metrics || cfg.Metrics.Namespace != "pagebuilder" {
		t.Fatalf("expected metrics enabled with default namespace, got %+v", cfg.Metrics)
	}
}
