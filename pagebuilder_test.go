package pagebuilder_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/goliatone/go-pagebuilder"
	projectscmd "github.com/goliatone/go-pagebuilder/internal/commands/projects"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/site"
)

func newModule(t *testing.T, cfg pagebuilder.Config) *pagebuilder.Module {
	t.Helper()
	module, err := pagebuilder.New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = module.Close(context.Background()) })
	return module
}

func TestModuleEditAndExport(t *testing.T) {
	module := newModule(t, pagebuilder.DefaultConfig())
	ctx := context.Background()

	session, err := module.Open(ctx, "landing")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	actions := []pagebuilder.Action{
		editor.AddBlockAction{BlockType: site.BlockCentered, BlockID: "hero"},
		editor.AddElementAction{BlockID: "hero", ElementType: site.ElementTitle, ElementID: "headline"},
		editor.RenamePageAction{PageID: site.DefaultPageID, Name: "  Início  "},
	}
	for _, action := range actions {
		if _, err := session.Dispatch(ctx, action); err != nil {
			t.Fatalf("Dispatch(%s) returned error: %v", action.Type(), err)
		}
	}
	if err := session.Flush(ctx); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}

	payload, err := module.Export(ctx, "landing")
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("exported payload is not JSON: %v", err)
	}
	pages, _ := decoded["pages"].([]any)
	if len(pages) != 1 {
		t.Fatalf("expected one exported page, got %v", decoded["pages"])
	}
	page, _ := pages[0].(map[string]any)
	if page["name"] != "Início" {
		t.Fatalf("expected trimmed page name, got %v", page["name"])
	}

	projects, err := module.Projects(ctx)
	if err != nil || len(projects) != 1 {
		t.Fatalf("expected one project, got %v (%v)", projects, err)
	}
}

func TestModuleRegisterCommands(t *testing.T) {
	module := newModule(t, pagebuilder.DefaultConfig())

	result, err := module.RegisterCommands(projectscmd.RegistrationOptions{})
	if err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}
	if len(result.Handlers) != 3 {
		t.Fatalf("expected 3 handlers, got %d", len(result.Handlers))
	}

	apply, ok := result.Handlers[0].(*projectscmd.ApplyActionHandler)
	if !ok {
		t.Fatalf("expected apply handler first, got %T", result.Handlers[0])
	}
	ctx := context.Background()
	err = apply.Execute(ctx, projectscmd.ApplyActionCommand{
		ProjectID: "cmd",
		Action:    editor.AddPageAction{PageID: "contato"},
		Flush:     true,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	doc, err := module.Load(ctx, "cmd")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.CurrentPageID != "contato" || len(doc.Pages) != 2 {
		t.Fatalf("expected new current page, got %q with %d pages", doc.CurrentPageID, len(doc.Pages))
	}
}
