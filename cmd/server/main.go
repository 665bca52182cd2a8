package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/textinsight/backend/internal/api"
	"github.com/textinsight/backend/internal/config"
	"github.com/textinsight/backend/internal/engine"
)

var (
	version    = "dev"
	commit     = "none"
	configPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "textinsight",
		Short: "Batch text analysis service",
		Long: `textinsight scores the sentiment of document batches and fits
topic models over them, over HTTP or from the command line.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("TEXTINSIGHT_CONFIG"), "YAML config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "textinsight %s (%s)\n", version, commit)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, entry, err := setup()
			if err != nil {
				return err
			}
			entry.Info("Starting Text Insight API Service")

			eng, err := engine.NewEngine(cfg, entry)
			if err != nil {
				entry.Errorf("Failed to initialize engine: %v", err)
				return err
			}

			ctx, stop := withSignals(cmd.Context())
			defer stop()

			api.Version = version
			server := api.NewServer(eng, entry)
			return server.Run(ctx, cfg.Server.Addr)
		},
	})

	rootCmd.AddCommand(newAnalyzeCmd())
	return rootCmd
}

// setup loads .env and the config file and builds the service logger.
func setup() (*config.Config, *logrus.Entry, error) {
	config.LoadDotEnv(".env")
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cfg.Log).WithField("service", "textinsight"), nil
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func withSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
