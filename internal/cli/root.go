// Package cli implements the hbnb command-line interface: the interactive
// console as the root command plus init and version.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/console"
	"github.com/mesh-intelligence/hbnb/internal/logging"
	"github.com/mesh-intelligence/hbnb/internal/paths"
	"github.com/mesh-intelligence/hbnb/internal/sqlite"
	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	file      string
	backend   string
	logLevel  string
}

// NewRootCmd creates the top-level "hbnb" command with global flags and
// all subcommands registered. Running it without a subcommand starts the
// console.
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "hbnb",
		Short: "Command console for hbnb objects",
		Long: "hbnb is a line-oriented console that creates, shows, updates, and destroys\n" +
			"objects kept in a JSON file or SQLite database.\n\nClasses: " +
			strings.Join(types.DefaultRegistry().Names(), ", "),
		Args: cobra.NoArgs,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.hbnb)")
	root.PersistentFlags().StringVar(&flags.file, "file", "", "backing data file (default: $(CWD)/file.json)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: json or sqlite (default: json)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(&flags))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// openPersister returns the persister for the configured backend.
func openPersister(cfg types.Config) (types.Persister, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case types.BackendSQLite:
		return sqlite.NewBackend(cfg.Path()), nil
	default:
		return storage.NewJSONFile(cfg.Path()), nil
	}
}

func runConsole(cmd *cobra.Command, flags rootFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	s, err := resolveSettings(v, flags)
	if err != nil {
		return err
	}

	logger := logging.New(s.logLevel, cmd.ErrOrStderr())
	logging.SetDefault(logger)
	ctx := logging.With(cmd.Context(), logger)

	p, err := openPersister(s.store)
	if err != nil {
		return err
	}
	table := storage.New(p, types.DefaultRegistry())

	res, err := table.Reload()
	if err != nil {
		return fmt.Errorf("load %s: %w", s.store.Path(), err)
	}
	switch {
	case res.Corrupt != nil:
		logger.Warn("backing store is not readable as objects, starting empty",
			append([]any{"path", s.store.Path()}, logging.ErrorAttrs(res.Corrupt)...)...)
	case res.Partial():
		for _, sk := range res.Skipped {
			logger.Warn("skipped stored object",
				append([]any{"key", sk.Key}, logging.ErrorAttrs(sk.Err)...)...)
		}
	}
	logger.Debug("loaded objects", "path", s.store.Path(), "backend", s.store.Backend, "count", res.Loaded)

	reader, closeReader, err := newLineReader(cmd.InOrStdin(), s.prompt)
	if err != nil {
		return err
	}
	defer closeReader()

	interp := console.New(table, types.DefaultRegistry(), cmd.OutOrStdout())
	runErr := interp.Run(ctx, reader)

	// Records that failed to load stay on disk until a command rewrites the
	// store.
	if res.Partial() && !table.Saved() {
		logger.Debug("final save skipped, store was only partly loaded", "path", s.store.Path())
		return runErr
	}
	if err := table.Save(); err != nil {
		logger.Error("final save failed", "path", s.store.Path(), "error", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// newLineReader returns a readline session when in is an interactive
// terminal and a prompt-less scanner otherwise.
func newLineReader(in io.Reader, prompt string) (console.LineReader, func(), error) {
	if f, ok := in.(*os.File); ok && readline.IsTerminal(int(f.Fd())) {
		tr, err := console.NewTerminalReader(prompt)
		if err != nil {
			return nil, nil, fmt.Errorf("open terminal: %w", err)
		}
		return tr, func() { tr.Close() }, nil
	}
	return console.NewScannerReader(in), func() {}, nil
}
