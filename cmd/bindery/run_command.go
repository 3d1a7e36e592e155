package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bindery/internal/config"
	"bindery/internal/logging"
	"bindery/internal/preflight"
	"bindery/internal/render"
	"bindery/internal/supervise"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run [flags] -- <audible-util args>",
		Short: "Run a conversion and render live progress",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversion(cmd, *configFlag, args)
		},
	}
}

func runConversion(cmd *cobra.Command, configPath string, args []string) error {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	renderer := render.New(cmd.OutOrStdout(),
		render.WithBarWidth(cfg.Display.BarWidth),
		render.WithColorMode(render.ColorMode(cfg.Display.Color)),
	)

	if err := preflight.Run(cfg.Tool.Binary, cfg.Logging.LogDir); err != nil {
		renderer.SpawnFailure(err)
		logger.Error("preflight failed", logging.Error(err))
		return &exitError{code: supervise.SpawnFailureExitCode}
	}

	opts := []supervise.Option{supervise.WithLogger(logger)}
	if cfg.Tool.SingleInstance {
		opts = append(opts, supervise.WithLockPath(cfg.LockPath()))
	}

	supervisor := supervise.New(cfg.Tool.Binary, renderer, opts...)
	if code := supervisor.Run(cmd.Context(), args); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	outputs := []string{"stderr"}
	if cfg.Logging.LogDir != "" {
		if err := os.MkdirAll(cfg.Logging.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		outputs = append(outputs, filepath.Join(cfg.Logging.LogDir, "bindery.log"))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}
