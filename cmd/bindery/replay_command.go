package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bindery/internal/config"
	"bindery/internal/render"
	"bindery/internal/supervise"
)

func newReplayCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file|->",
		Short: "Replay a captured event stream through the renderer",
		Long: `replay reads a file of line-delimited JSON progress events (as captured
with 'audible-util ... --machine-readable > events.jsonl') and renders it
exactly as a live run would, without spawning the tool. Use '-' to read
from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var input io.ReadCloser
			if args[0] == "-" {
				input = io.NopCloser(cmd.InOrStdin())
			} else {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open event stream: %w", err)
				}
				input = file
			}
			defer input.Close()

			logger, err := buildLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			renderer := render.New(cmd.OutOrStdout(),
				render.WithBarWidth(cfg.Display.BarWidth),
				render.WithColorMode(render.ColorMode(cfg.Display.Color)),
			)

			supervisor := supervise.New(cfg.Tool.Binary, renderer, supervise.WithLogger(logger))
			return supervisor.Replay(input)
		},
	}
}
