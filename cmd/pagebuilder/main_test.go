package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/editor"
)

const cliSeedYAML = `
categories:
  - code: eventos
    name: Eventos
    templates:
      - code: lancamento
        name: Lançamento
        document: |
          {"pages":[{"id":"home","name":"Início","blocks":[]},{"id":"agenda","name":"Agenda","blocks":[]}],"currentPageId":"home"}
`

func writeCLIConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "templates.yaml")
	if err := os.WriteFile(seedPath, []byte(cliSeedYAML), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	config := fmt.Sprintf(`storage:
  provider: bun
  driver: sqlite3
  dsn: "file:%s"
templates:
  seed_file: %q
`, filepath.Join(dir, "cli.db"), seedPath)
	path := filepath.Join(dir, "pagebuilder.yaml")
	if err := os.WriteFile(path, []byte(config), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := buildRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestApplyPersistsAcrossInvocations(t *testing.T) {
	config := writeCLIConfig(t)

	out, _, err := runCLI(t, "apply", "landing", "add_block", `{"blockType":"centered","blockId":"hero"}`, "-c", config)
	if err != nil {
		t.Fatalf("apply returned error: %v", err)
	}
	if !strings.Contains(out, "applied") {
		t.Fatalf("expected applied summary, got %q", out)
	}

	out, _, err = runCLI(t, "show", "landing", "--config", config)
	if err != nil {
		t.Fatalf("show returned error: %v", err)
	}
	if !strings.Contains(out, `"hero"`) {
		t.Fatalf("expected stored block in document, got %s", out)
	}

	out, _, err = runCLI(t, "projects", "-c", config)
	if err != nil {
		t.Fatalf("projects returned error: %v", err)
	}
	if strings.TrimSpace(out) != "landing" {
		t.Fatalf("expected landing project, got %q", out)
	}
}

func TestApplyReportsMissingTargets(t *testing.T) {
	config := writeCLIConfig(t)

	_, stderr, err := runCLI(t, "apply", "landing", "remove_block", `{"blockId":"missing"}`, "-c", config)
	if err != nil {
		t.Fatalf("expected missing block to be tolerated, got %v", err)
	}
	if !strings.Contains(stderr, "remove_block") {
		t.Fatalf("expected warning on stderr, got %q", stderr)
	}
}

func TestApplyRejectsUnknownAction(t *testing.T) {
	_, _, err := runCLI(t, "apply", "landing", "explode")
	if !errors.Is(err, editor.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestTemplatesListAndImport(t *testing.T) {
	config := writeCLIConfig(t)

	out, _, err := runCLI(t, "templates", "list", "--category", "eventos", "-c", config)
	if err != nil {
		t.Fatalf("templates list returned error: %v", err)
	}
	fields := strings.Fields(out)
	if len(fields) < 2 || fields[1] != "lancamento" {
		t.Fatalf("expected seeded template, got %q", out)
	}

	out, _, err = runCLI(t, "import", "evento", fields[0], "-c", config)
	if err != nil {
		t.Fatalf("import returned error: %v", err)
	}
	if !strings.Contains(out, "2 pages") {
		t.Fatalf("expected imported page count, got %q", out)
	}

	out, _, err = runCLI(t, "show", "evento", "-c", config)
	if err != nil {
		t.Fatalf("show returned error: %v", err)
	}
	if !strings.Contains(out, `"agenda"`) {
		t.Fatalf("expected template pages in document, got %s", out)
	}
}

func TestImportRejectsInvalidTemplateID(t *testing.T) {
	_, _, err := runCLI(t, "import", "evento", "not-a-uuid")
	if err == nil || !strings.Contains(err.Error(), "invalid template id") {
		t.Fatalf("expected invalid template id error, got %v", err)
	}
}

func TestActionsListsNames(t *testing.T) {
	out, _, err := runCLI(t, "actions")
	if err != nil {
		t.Fatalf("actions returned error: %v", err)
	}
	if !strings.Contains(out, "add_page\n") || !strings.Contains(out, "update_element\n") {
		t.Fatalf("expected action names, got %q", out)
	}
}
