package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type renameMessage struct {
	ProjectID string
	Name      string
}

func (renameMessage) Type() string { return "pagebuilder.test.rename" }

func (m renameMessage) Validate() error {
	if m.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestHandlerExecuteClassifiesErrors(t *testing.T) {
	boom := errors.New("boom")
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []struct {
		name     string
		ctx      context.Context
		msg      renameMessage
		execErr  error
		timeout  time.Duration
		category goerrors.Category
		code     string
		ran      bool
	}{
		{
			name:     "validation short circuits",
			ctx:      context.Background(),
			msg:      renameMessage{ProjectID: "p1"},
			category: goerrors.CategoryValidation,
			code:     CodeValidationFailed,
		},
		{
			name:     "cancelled before execution",
			ctx:      cancelled,
			msg:      renameMessage{ProjectID: "p1", Name: "Home"},
			category: goerrors.CategoryCommand,
			code:     CodeCanceled,
		},
		{
			name:     "execution failure keeps cause",
			ctx:      context.Background(),
			msg:      renameMessage{ProjectID: "p1", Name: "Home"},
			execErr:  boom,
			category: goerrors.CategoryCommand,
			code:     CodeExecutionFailed,
			ran:      true,
		},
		{
			name:     "timeout",
			ctx:      context.Background(),
			msg:      renameMessage{ProjectID: "p1", Name: "Home"},
			timeout:  10 * time.Millisecond,
			category: goerrors.CategoryCommand,
			code:     CodeTimedOut,
			ran:      true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ran := false
			h := NewHandler(func(ctx context.Context, _ renameMessage) error {
				ran = true
				if tc.timeout > 0 {
					<-ctx.Done()
					return ctx.Err()
				}
				return tc.execErr
			}, WithTimeout[renameMessage](tc.timeout))

			err := h.Execute(tc.ctx, tc.msg)
			if !goerrors.IsCategory(err, tc.category) {
				t.Fatalf("expected category %s, got %v", tc.category, err)
			}
			if got := TextCode(err); got != tc.code {
				t.Fatalf("expected text code %s, got %q", tc.code, got)
			}
			if ran != tc.ran {
				t.Fatalf("expected ran=%t, got %t", tc.ran, ran)
			}
			if tc.execErr != nil && !errors.Is(err, tc.execErr) {
				t.Fatalf("expected cause to be preserved, got %v", err)
			}
		})
	}
}

func TestHandlerKeepsCategorisedErrors(t *testing.T) {
	notFound := goerrors.New("template missing", goerrors.CategoryNotFound)
	h := NewHandler(func(context.Context, renameMessage) error { return notFound })

	err := h.Execute(context.Background(), renameMessage{Name: "Home"})
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category to survive, got %v", err)
	}
}

func TestHandlerAttachesMessageMetadata(t *testing.T) {
	h := NewHandler(func(context.Context, renameMessage) error { return errors.New("disk full") },
		WithOperation[renameMessage]("projects.rename"),
		WithMessageFields(func(msg renameMessage) map[string]any {
			return map[string]any{"project_id": msg.ProjectID}
		}),
	)

	err := h.Execute(context.Background(), renameMessage{ProjectID: "p9", Name: "Home"})
	var categorised *goerrors.Error
	if !errors.As(err, &categorised) {
		t.Fatalf("expected go-errors error, got %T", err)
	}
	meta := categorised.Metadata
	if meta["command"] != "pagebuilder.test.rename" || meta["operation"] != "projects.rename" || meta["project_id"] != "p9" {
		t.Fatalf("unexpected metadata %v", meta)
	}
}

func TestHandlerTelemetryReportsStatus(t *testing.T) {
	var infos []TelemetryInfo
	record := func(_ context.Context, _ renameMessage, info TelemetryInfo) {
		infos = append(infos, info)
	}
	fail := true
	h := NewHandler(func(context.Context, renameMessage) error {
		if fail {
			return errors.New("first call fails")
		}
		return nil
	},
		WithOperation[renameMessage]("projects.rename"),
		WithMessageFields(func(msg renameMessage) map[string]any {
			return map[string]any{"project_id": msg.ProjectID}
		}),
		WithTelemetry(record),
	)

	ctx := context.Background()
	_ = h.Execute(ctx, renameMessage{ProjectID: "p1", Name: "Home"})
	fail = false
	if err := h.Execute(ctx, renameMessage{ProjectID: "p1", Name: "Home"}); err != nil {
		t.Fatalf("expected second execution to succeed, got %v", err)
	}

	if len(infos) != 2 {
		t.Fatalf("expected 2 telemetry calls, got %d", len(infos))
	}
	if infos[0].Status != TelemetryStatusFailed || infos[0].Error == nil {
		t.Fatalf("expected failed status with error, got %+v", infos[0])
	}
	if infos[1].Status != TelemetryStatusSuccess || infos[1].Error != nil {
		t.Fatalf("expected success status, got %+v", infos[1])
	}
	if infos[1].Command != "pagebuilder.test.rename" || infos[1].Operation != "projects.rename" {
		t.Fatalf("unexpected telemetry identity %q/%q", infos[1].Command, infos[1].Operation)
	}
	if infos[1].Fields["project_id"] != "p1" {
		t.Fatalf("expected project_id field, got %v", infos[1].Fields)
	}
}

func TestDefaultTelemetryToleratesNilLogger(t *testing.T) {
	telemetry := DefaultTelemetry[renameMessage](nil)
	telemetry(context.Background(), renameMessage{}, TelemetryInfo{Status: TelemetryStatusFailed, Error: errors.New("boom")})
}

func TestTextCodeOfPlainError(t *testing.T) {
	if got := TextCode(errors.New("plain")); got != "" {
		t.Fatalf("expected empty text code, got %q", got)
	}
}
