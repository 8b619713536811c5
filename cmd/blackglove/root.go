package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
)

var (
	flagConfig  string
	flagHome    string
	flagVerbose bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blackglove",
	Short: "Black Glove - local-first reconnaissance agent",
	Long: `Black Glove is a local-first, agent-driven reconnaissance assistant.
It plans passive reconnaissance against targets you have authorized,
executes its built-in probes under a policy gate, and reports findings.

All reasoning runs on the configured model provider; all probing stays
inside the assets you registered.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	home := flagHome
	if home == "" {
		home = os.Getenv("BLACKGLOVE_HOME")
	}

	path := flagConfig
	if path == "" {
		if home != "" {
			path = filepath.Join(home, "config.yaml")
		} else {
			userHome, _ := os.UserHomeDir()
			path = filepath.Join(userHome, ".blackglove", "config.yaml")
		}
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if home != "" {
		cfg.Home = home
		cfg.Tools.EvidenceDir = filepath.Join(home, "evidence")
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagHome, "home", "", "agent home directory")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(assetCmd)
	rootCmd.AddCommand(reconCmd)
	rootCmd.AddCommand(reportCmd)
}
