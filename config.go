package assetfield

import "github.com/goliatone/go-assetfield/internal/runtimeconfig"

var (
	ErrFieldSizeInvalid        = runtimeconfig.ErrFieldSizeInvalid
	ErrTempoInvalid            = runtimeconfig.ErrTempoInvalid
	ErrUndoLimitInvalid        = runtimeconfig.ErrUndoLimitInvalid
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown   = runtimeconfig.ErrStorageDialectUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrPersistenceRequiresBun  = runtimeconfig.ErrPersistenceRequiresBun
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	FieldsConfig   = runtimeconfig.FieldsConfig
	StoreConfig    = runtimeconfig.StoreConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
	CommandsConfig = runtimeconfig.CommandsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadYAML(path)
}
