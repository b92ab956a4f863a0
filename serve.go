package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Barrsum/portfolio/internal/config"
	"github.com/Barrsum/portfolio/internal/logger"
)

type serveFlags struct {
	port int
	mode string
}

func newServeCmd(root *rootFlags) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, root, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.port, "port", "p", 0, "Listen port (overrides config)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "gin mode: debug, release or test (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, root *rootFlags, flags *serveFlags) error {
	cfg, err := config.Load(root.configFile)
	if err != nil {
		return err
	}
	if flags != nil {
		if flags.port != 0 {
			cfg.Port = flags.port
		}
		if flags.mode != "" {
			cfg.Mode = flags.mode
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, log)
}
