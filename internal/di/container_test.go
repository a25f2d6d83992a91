package di_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/database"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/documents"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
	"github.com/goliatone/go-pagebuilder/site"
	"github.com/google/uuid"
)

const seedYAML = `
categories:
  - code: lojas
    name: Lojas
    templates:
      - code: vitrine
        name: Vitrine
        document: |
          {"pages":[{"id":"home","name":"Início","blocks":[]}],"currentPageId":"home"}
`

func newContainer(t *testing.T, cfg runtimeconfig.Config, opts ...di.Option) *di.Container {
	t.Helper()
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close(context.Background()) })
	return container
}

func TestContainerDefaultsToMemory(t *testing.T) {
	container := newContainer(t, runtimeconfig.DefaultConfig())

	if container.DB() != nil {
		t.Fatal("expected no database for the memory provider")
	}
	if container.Metrics() != nil {
		t.Fatal("expected metrics to be disabled by default")
	}
	if container.CacheService() != nil {
		t.Fatal("expected no cache without a database")
	}

	ctx := context.Background()
	session, err := container.Sessions().Open(ctx, "memo")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := session.Dispatch(ctx, editor.AddPageAction{}); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if err := session.Flush(ctx); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	projects, err := container.Bridge().Projects(ctx)
	if err != nil || len(projects) != 1 || projects[0] != "memo" {
		t.Fatalf("expected memo project to be stored, got %v (%v)", projects, err)
	}
}

func TestContainerUsesPageNameFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Editor.NewPageNameFormat = "Page %d"
	container := newContainer(t, cfg)

	ctx := context.Background()
	session, err := container.Sessions().Open(ctx, "names")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := session.Dispatch(ctx, editor.AddPageAction{}); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	pages := session.State().Site.Pages
	if got := pages[len(pages)-1].Name; got != "Page 2" {
		t.Fatalf("expected configured page name, got %q", got)
	}
}

func TestContainerWithBunDatabaseAndCache(t *testing.T) {
	db := testsupport.NewBunDB(t, database.Models()...)
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.ProviderBun
	cfg.Storage.DSN = "injected"
	cfg.Features.Metrics = true

	container := newContainer(t, cfg, di.WithBunDB(db))
	if container.CacheService() == nil {
		t.Fatal("expected repository cache to be configured")
	}
	if _, ok := container.DocumentRepository().(*documents.BunRepository); !ok {
		t.Fatalf("expected bun document repository, got %T", container.DocumentRepository())
	}
	if container.Metrics() == nil {
		t.Fatal("expected metrics to be enabled")
	}

	ctx := context.Background()
	doc := site.DefaultSite()
	doc.Pages[0].Name = "Persistida"
	if err := container.Bridge().Save(ctx, "bun-project", doc); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := container.Bridge().Load(ctx, "bun-project")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Pages[0].Name != "Persistida" {
		t.Fatalf("expected stored page name, got %q", loaded.Pages[0].Name)
	}
}

func TestContainerOpensSQLiteFromConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.ProviderBun
	cfg.Storage.Driver = runtimeconfig.DriverSQLite
	cfg.Storage.DSN = "file:" + filepath.Join(t.TempDir(), "builder.db")

	container := newContainer(t, cfg)
	if container.DB() == nil {
		t.Fatal("expected container to open the database")
	}
	if _, err := container.Sessions().Open(context.Background(), "sqlite"); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
}

func TestContainerSeedsTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	cfg := runtimeconfig.DefaultConfig()
	cfg.Templates.SeedFile = path
	container := newContainer(t, cfg)

	ctx := context.Background()
	if err := container.SeedTemplates(ctx); err != nil {
		t.Fatalf("SeedTemplates returned error: %v", err)
	}
	if err := container.SeedTemplates(ctx); err != nil {
		t.Fatalf("second SeedTemplates returned error: %v", err)
	}

	list, err := container.TemplateService().ListTemplates(ctx, uuid.Nil)
	if err != nil {
		t.Fatalf("ListTemplates returned error: %v", err)
	}
	if len(list) != 1 || list[0].Code != "vitrine" {
		t.Fatalf("expected one seeded template, got %v", list)
	}

	session, err := container.Sessions().NewFromTemplate(ctx, "vitrine-project", list[0].ID)
	if err != nil {
		t.Fatalf("NewFromTemplate returned error: %v", err)
	}
	if got := session.State().Site.CurrentPageID; got != "home" {
		t.Fatalf("expected template page, got %q", got)
	}
}

func TestContainerTemplatesDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Templates = false
	container := newContainer(t, cfg)

	_, err := container.TemplateService().ListCategories(context.Background())
	if !errors.Is(err, templates.ErrFeatureDisabled) {
		t.Fatalf("expected ErrFeatureDisabled, got %v", err)
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "s3"
	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}
