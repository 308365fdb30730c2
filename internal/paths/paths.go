// Package paths resolves the configuration directory and the backing data
// file.
package paths

import (
	"os"
	"path/filepath"
)

// Working-directory-relative defaults.
const (
	DefaultConfigDirName = ".hbnb"
	DefaultDataFileName  = "file.json"
)

// Environment variable names for path overrides.
const (
	EnvConfigDir = "HBNB_CONFIG_DIR"
	EnvFilePath  = "HBNB_FILE_PATH"
)

// getwd is overridden in tests.
var getwd = os.Getwd

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > HBNB_CONFIG_DIR env > $(CWD)/.hbnb.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDataFile returns the backing file path following the precedence
// chain: flag > configYAMLValue > HBNB_FILE_PATH env > $(CWD)/file.json.
func ResolveDataFile(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvFilePath); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataFileName), nil
}
