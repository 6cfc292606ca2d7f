package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/orderlens/orderlens/internal/config"
	"github.com/orderlens/orderlens/internal/ignore"
	"github.com/orderlens/orderlens/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runtime is the per-invocation state shared by every command: the
// effective config and a logger tagged with the run id.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
	runID  string
}

type runtimeKey struct{}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	configPath, err := OptionalStringFlag(cmd, "config")
	if err != nil {
		return nil, err
	}
	verbose, err := OptionalBoolFlag(cmd, "verbose")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	return &runtime{
		cfg:    cfg,
		logger: logger.With(zap.String("run_id", runID)),
		runID:  runID,
	}, nil
}

// setupRuntime runs before every subcommand and stores the runtime in the
// command context.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	cmd.SetContext(context.WithValue(commandContext(cmd), runtimeKey{}, rt))
	return nil
}

func syncRuntime(cmd *cobra.Command, _ []string) {
	if rt, ok := commandContext(cmd).Value(runtimeKey{}).(*runtime); ok {
		_ = rt.logger.Sync()
	}
}

// runtimeFor returns the runtime set up by the root command, building one on
// the spot when the command runs standalone.
func runtimeFor(cmd *cobra.Command) (*runtime, error) {
	if rt, ok := commandContext(cmd).Value(runtimeKey{}).(*runtime); ok {
		return rt, nil
	}
	return newRuntime(cmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func requireDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to access path %q: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", abs)
	}
	return abs, nil
}

func loadIgnore(dir string) (*ignore.Matcher, error) {
	matcher, err := ignore.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", ignore.FileName, err)
	}
	return matcher, nil
}

func argOr(args []string, fallback string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return fallback
}
