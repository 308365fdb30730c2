package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/hbnb/internal/console"
	"github.com/mesh-intelligence/hbnb/internal/paths"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	FilePath string `yaml:"file_path,omitempty"`
	LogLevel string `yaml:"log_level"`
	Prompt   string `yaml:"prompt"`
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration",
		Long:  "Create the configuration directory and write config.yaml if it does not exist.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, *flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags rootFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg := configFile{
		Backend:  flags.backend,
		FilePath: flags.file,
		LogLevel: flags.logLevel,
		Prompt:   console.DefaultPrompt,
	}
	if cfg.Backend == "" {
		cfg.Backend = types.BackendJSON
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if err := (types.Config{Backend: cfg.Backend}).Validate(); err != nil {
		return fmt.Errorf("backend %q: %w", cfg.Backend, err)
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	written, err := writeConfigIfMissing(path, cfg)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if !written {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. An existing file is left untouched and reported as not written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
