// Package cli implements the tasks command-line interface: one-shot
// subcommands plus the interactive shell, which is the default when no
// subcommand is given.
package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/internal/jsonfile"
	"github.com/mesh-intelligence/tasklist/internal/logging"
	"github.com/mesh-intelligence/tasklist/internal/paths"
	"github.com/mesh-intelligence/tasklist/internal/sqlite"
	"github.com/mesh-intelligence/tasklist/internal/store"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
	verbose   bool
}

// app is the per-invocation state shared by subcommands. It is filled in by
// the root PersistentPreRunE.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logger    *log.Logger
}

// NewRootCmd creates the top-level "tasks" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "tasks",
		Short: "A personal task list",
		Long: "tasks keeps a personal list of short to-do items in a local file.\n" +
			"Run without a subcommand to start the interactive shell.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runShell,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/tasklist)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: current directory)")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: json or sqlite (default from config)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newShellCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newCompleteCmd(a))

	return root
}

// Execute runs the root command against the process arguments and returns
// the exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
	}
	return ExitCode(err)
}

// ExitCode maps an error returned by a command to a process exit code.
// Errors that were not classified, such as bad arguments, are user errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// classify wraps err with the exit code matching its kind.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrInvalidTitle), errors.Is(err, types.ErrNotFound):
		return userError(err)
	default:
		return sysError(err)
	}
}

// setup resolves directories, reads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	// version needs no configuration.
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	level := v.GetString(cfgKeyLogLevel)
	if a.flags.verbose {
		level = "debug"
	}
	opts := logging.DefaultOptions()
	opts.Level = level
	opts.Formatter = v.GetString(cfgKeyLogFormat)
	a.logger = logging.New(cmd.ErrOrStderr(), opts)

	backend := v.GetString(cfgKeyBackend)
	if a.flags.backend != "" {
		backend = a.flags.backend
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	cfg := types.Config{Backend: backend, DataDir: dataDir}
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("backend %q: %w", backend, err))
	}

	a.configDir = configDir
	a.cfg = cfg
	a.logger.Debug("configured", "config_dir", configDir, "backend", cfg.Backend, "path", cfg.Path())
	return nil
}

// newBackend returns the storage backend selected by the config.
func (a *app) newBackend() types.Backend {
	switch a.cfg.Backend {
	case types.BackendSQLite:
		return sqlite.New(a.cfg.Path())
	default:
		return jsonfile.New(a.cfg.Path())
	}
}

// openStore loads the task list from the configured backend.
func (a *app) openStore() (*store.Store, types.Backend, error) {
	backend := a.newBackend()
	st := store.New()
	if err := st.Load(backend); err != nil {
		return nil, nil, classify(err)
	}
	a.logger.Debug("tasks loaded", "tasks", st.Len(), "next_id", st.NextID(), "location", backend.Location())
	return st, backend, nil
}

// saveStore writes the task list back to its backend.
func (a *app) saveStore(st *store.Store, backend types.Backend) error {
	if err := st.Save(backend); err != nil {
		return classify(err)
	}
	a.logger.Debug("tasks saved", "tasks", st.Len(), "location", backend.Location())
	return nil
}
