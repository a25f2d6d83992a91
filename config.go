package pagebuilder

import "github.com/goliatone/go-pagebuilder/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown     = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrSaveDebounceInvalid      = runtimeconfig.ErrSaveDebounceInvalid
	ErrSaveTimeoutInvalid       = runtimeconfig.ErrSaveTimeoutInvalid
	ErrPageNameFormatInvalid    = runtimeconfig.ErrPageNameFormatInvalid
	ErrTimerIntervalInvalid     = runtimeconfig.ErrTimerIntervalInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrMetricsNamespaceRequired = runtimeconfig.ErrMetricsNamespaceRequired
	ErrTemplatesFeatureRequired = runtimeconfig.ErrTemplatesFeatureRequired
)

type (
	Config            = runtimeconfig.Config
	StorageConfig     = runtimeconfig.StorageConfig
	CacheConfig       = runtimeconfig.CacheConfig
	PersistenceConfig = runtimeconfig.PersistenceConfig
	EditorConfig      = runtimeconfig.EditorConfig
	TimersConfig      = runtimeconfig.TimersConfig
	TemplatesConfig   = runtimeconfig.TemplatesConfig
	MetricsConfig     = runtimeconfig.MetricsConfig
	Features          = runtimeconfig.Features
	LoggingConfig     = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
