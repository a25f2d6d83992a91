package di

import (
	"context"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/gologger"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

func TestConfigureLoggerProviderByFeature(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		format  string
		want    bool
	}{
		{name: "disabled", enabled: false},
		{name: "json", enabled: true, format: "json", want: true},
		{name: "pretty", enabled: true, format: "pretty", want: true},
		{name: "console", enabled: true, format: "console", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.Features.Logger = tc.enabled
			cfg.Logging.Level = "debug"
			cfg.Logging.Format = tc.format

			container, err := NewContainer(cfg)
			if err != nil {
				t.Fatalf("NewContainer returned error: %v", err)
			}
			t.Cleanup(func() { _ = container.Close(context.Background()) })

			provider, ok := container.loggerProvider.(*gologger.Provider)
			if ok != tc.want {
				t.Fatalf("expected go-logger provider=%t, got %T", tc.want, container.loggerProvider)
			}
			if ok && provider.GetLogger(logging.SessionsModule) == nil {
				t.Fatal("expected sessions logger from go-logger provider")
			}
		})
	}
}

func TestInjectedLoggerProviderWinsOverConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true

	injected, err := gologger.NewProvider(gologger.Config{Level: "warn"})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	container, err := NewContainer(cfg, WithLoggerProvider(injected))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close(context.Background()) })

	if container.LoggerProvider() != injected {
		t.Fatalf("expected injected provider, got %T", container.LoggerProvider())
	}
}
