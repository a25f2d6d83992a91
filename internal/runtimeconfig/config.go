package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrStorageProviderUnknown   = errors.New("pagebuilder config: storage provider is invalid")
	ErrStorageDriverUnknown     = errors.New("pagebuilder config: storage driver is invalid")
	ErrStorageDSNRequired       = errors.New("pagebuilder config: storage dsn is required for the bun provider")
	ErrCacheTTLInvalid          = errors.New("pagebuilder config: cache ttl must be positive when cache is enabled")
	ErrSaveDebounceInvalid      = errors.New("pagebuilder config: save debounce must be zero or positive")
	ErrSaveTimeoutInvalid       = errors.New("pagebuilder config: save timeout must be zero or positive")
	ErrPageNameFormatInvalid    = errors.New("pagebuilder config: new page name format must contain %d")
	ErrTimerIntervalInvalid     = errors.New("pagebuilder config: timer intervals must be positive")
	ErrLoggingProviderRequired  = errors.New("pagebuilder config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("pagebuilder config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("pagebuilder config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("pagebuilder config: logging format is invalid")
	ErrMetricsNamespaceRequired = errors.New("pagebuilder config: metrics namespace is required when metrics are enabled")
	ErrTemplatesFeatureRequired = errors.New("pagebuilder config: template seeding from file requires the templates feature")
)

// Storage providers.
const (
	ProviderMemory = "memory"
	ProviderBun    = "bun"
)

// Database drivers for the bun provider.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config aggregates runtime options for the page builder module.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Cache       CacheConfig       `yaml:"cache"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Editor      EditorConfig      `yaml:"editor"`
	Timers      TimersConfig      `yaml:"timers"`
	Templates   TemplatesConfig   `yaml:"templates"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Features    Features          `yaml:"features"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// StorageConfig selects where project documents and templates live.
type StorageConfig struct {
	Provider string `yaml:"provider"`
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
}

// CacheConfig toggles the repository cache in front of bun repositories.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// PersistenceConfig controls the autosave policy. A zero SaveDebounce saves
// a full snapshot on every change.
type PersistenceConfig struct {
	SaveDebounce time.Duration `yaml:"save_debounce"`
	SaveTimeout  time.Duration `yaml:"save_timeout"`
}

// EditorConfig holds naming defaults for new pages.
type EditorConfig struct {
	NewPageNameFormat string `yaml:"new_page_name_format"`
}

// TimersConfig tunes countdown and carousel timers.
type TimersConfig struct {
	CountdownInterval       time.Duration `yaml:"countdown_interval"`
	CarouselDefaultInterval time.Duration `yaml:"carousel_default_interval"`
	Location                string        `yaml:"location"`
}

// TemplatesConfig points at an optional catalog seed file.
type TemplatesConfig struct {
	SeedFile string `yaml:"seed_file"`
}

// MetricsConfig configures the prometheus collectors.
type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

// Features toggles optional functionality.
type Features struct {
	Logger    bool `yaml:"logger"`
	Metrics   bool `yaml:"metrics"`
	Templates bool `yaml:"templates"`
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns in-memory storage, saves on every change and the
// stock timer intervals.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: ProviderMemory,
			Driver:   DriverSQLite,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Persistence: PersistenceConfig{
			SaveTimeout: 10 * time.Second,
		},
		Editor: EditorConfig{
			NewPageNameFormat: "Página %d",
		},
		Timers: TimersConfig{
			CountdownInterval:       time.Second,
			CarouselDefaultInterval: 3 * time.Second,
		},
		Metrics: MetricsConfig{
			Namespace: "pagebuilder",
		},
		Features: Features{
			Templates: true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case ProviderMemory:
	case ProviderBun:
		switch normalize(cfg.Storage.Driver) {
		case DriverSQLite, DriverPostgres:
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Persistence.SaveDebounce < 0 {
		return ErrSaveDebounceInvalid
	}
	if cfg.Persistence.SaveTimeout < 0 {
		return ErrSaveTimeoutInvalid
	}
	if format := cfg.Editor.NewPageNameFormat; format != "" && !strings.Contains(format, "%d") {
		return ErrPageNameFormatInvalid
	}
	if cfg.Timers.CountdownInterval <= 0 || cfg.Timers.CarouselDefaultInterval <= 0 {
		return ErrTimerIntervalInvalid
	}
	if strings.TrimSpace(cfg.Templates.SeedFile) != "" && !cfg.Features.Templates {
		return ErrTemplatesFeatureRequired
	}
	if cfg.Features.Metrics && strings.TrimSpace(cfg.Metrics.Namespace) == "" {
		return ErrMetricsNamespaceRequired
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// TimerLocation resolves the configured zone, defaulting to local time.
func (cfg Config) TimerLocation() (*time.Location, error) {
	name := strings.TrimSpace(cfg.Timers.Location)
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
