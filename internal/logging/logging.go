package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Module names used when requesting loggers from a provider.
const (
	RootModule      = "pagebuilder"
	EditorModule    = "pagebuilder.editor"
	SessionsModule  = "pagebuilder.sessions"
	DocumentsModule = "pagebuilder.documents"
	TemplatesModule = "pagebuilder.templates"
	TimersModule    = "pagebuilder.timers"
	CommandsModule  = "pagebuilder.commands"
)

// Common structured field keys.
const (
	FieldProjectID  = "project_id"
	FieldTemplateID = "template_id"
	FieldAction     = "action"
	FieldPageID     = "page_id"
)

// ModuleLogger returns the logger for module with a "module" field attached.
// Without a provider the returned logger discards everything.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = RootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// WithFields attaches fields when the logger supports them and returns the
// logger unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	if len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithProject scopes a logger to a project, dropping empty ids.
func WithProject(logger interfaces.Logger, projectID string) interfaces.Logger {
	if trimmed := strings.TrimSpace(projectID); trimmed != "" {
		return WithFields(logger, map[string]any{FieldProjectID: trimmed})
	}
	return logger
}

type contextKey struct{}

// ContextWithFields stores fields on ctx, merged over any already present.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextKey{}, merged)
}

// ContextFields returns a copy of the fields stored on ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextKey{}).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// FromContext binds ctx to logger and applies the fields stored on it.
func FromContext(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		logger = NoOp()
	}
	if ctx == nil {
		return logger
	}
	return WithFields(logger.WithContext(ctx), ContextFields(ctx))
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
