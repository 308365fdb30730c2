package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/hbnb/internal/console"
	"github.com/mesh-intelligence/hbnb/internal/logging"
	"github.com/mesh-intelligence/hbnb/internal/paths"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "HBNB"

	cfgKeyBackend  = "backend"
	cfgKeyFilePath = "file_path"
	cfgKeyLogLevel = "log_level"
	cfgKeyPrompt   = "prompt"

	defaultLogLevel = "warn"
)

var errUnknownLogLevel = errors.New("unknown log level, want debug, info, warn, or error")

func validateLogLevel(level string) error {
	if _, ok := logging.ParseLevel(level); !ok {
		return fmt.Errorf("log level %q: %w", level, errUnknownLogLevel)
	}
	return nil
}

// settings is the resolved runtime configuration for one invocation.
type settings struct {
	store    types.Config
	logLevel string
	prompt   string
}

// newViper returns a viper instance with defaults and HBNB_ environment
// overrides for every config key. file_path has no default so the data
// file precedence chain in paths can tell an unset value apart.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendJSON)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyPrompt, console.DefaultPrompt)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{cfgKeyBackend, cfgKeyLogLevel, cfgKeyPrompt} {
		_ = v.BindEnv(key)
	}
	return v
}

// loadConfig reads config.yaml from configDir. A missing config directory
// or file is not an error; defaults and environment apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := newViper()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return v, nil
}

// resolveSettings merges flags over the loaded config and validates the
// result.
func resolveSettings(v *viper.Viper, f rootFlags) (settings, error) {
	backend := v.GetString(cfgKeyBackend)
	if f.backend != "" {
		backend = f.backend
	}
	level := v.GetString(cfgKeyLogLevel)
	if f.logLevel != "" {
		level = f.logLevel
	}
	if err := validateLogLevel(level); err != nil {
		return settings{}, err
	}

	file, err := paths.ResolveDataFile(f.file, v.GetString(cfgKeyFilePath))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data file: %w", err)
	}

	s := settings{
		store: types.Config{
			Backend:  backend,
			FilePath: file,
		},
		logLevel: level,
		prompt:   v.GetString(cfgKeyPrompt),
	}
	if err := s.store.Validate(); err != nil {
		return settings{}, fmt.Errorf("backend %q: %w", backend, err)
	}
	return s, nil
}
