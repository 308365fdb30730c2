package types

import "errors"

// Config selects the backing store for an object table.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	FilePath string `json:"file_path" yaml:"file_path"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultFilePath is the backing file used when none is configured.
const DefaultFilePath = "file.json"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSON:   true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// Path returns FilePath, or DefaultFilePath when it is empty.
func (c Config) Path() string {
	if c.FilePath == "" {
		return DefaultFilePath
	}
	return c.FilePath
}
