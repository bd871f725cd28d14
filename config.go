package mdpad

import "github.com/goliatone/go-mdpad/internal/runtimeconfig"

var (
	ErrStorageDriverUnknown   = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrStorageKeyRequired     = runtimeconfig.ErrStorageKeyRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	EditorConfig  = runtimeconfig.EditorConfig
	PreviewConfig = runtimeconfig.PreviewConfig
	ExportConfig  = runtimeconfig.ExportConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the default mdpad configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfigFile decodes a JSON config file over base.
func LoadConfigFile(path string, base Config) (Config, error) {
	return runtimeconfig.LoadFile(path, base)
}
