package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and an empty task list",
		Long: "Write config.yaml to the configuration directory if it is missing, then\n" +
			"create an empty task file if none exists. Existing files are kept.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(a.configDir, configFileExt)
	written, err := writeConfigIfMissing(configPath, configFile{
		Backend: a.cfg.Backend,
		DataDir: a.flags.dataDir,
	})
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if written {
		a.logger.Info("config written", "path", configPath)
	}

	backend := a.newBackend()
	if _, err := backend.ReadTasks(); err != nil {
		if !errors.Is(err, types.ErrSourceNotFound) {
			return classify(err)
		}
		if err := backend.WriteTasks(nil); err != nil {
			return classify(err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task list initialized at %s\n", backend.Location())
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether the file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if cfg.DataDir != "" {
		abs, err := filepath.Abs(cfg.DataDir)
		if err != nil {
			return false, err
		}
		cfg.DataDir = abs
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
