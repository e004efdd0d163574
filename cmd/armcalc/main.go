// Command armcalc computes armament attack power and status buildup from
// game data tables.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/udisondev/armcalc/internal/config"
)

const DefaultConfigPath = "config/armcalc.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by all subcommands. It is filled by the root
// command before any subcommand runs.
type app struct {
	configPath string
	source     string
	logLevel   string

	cfg config.Calculator
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "armcalc",
		Short:         "Armament attack power calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	defaultPath := DefaultConfigPath
	if p := os.Getenv("ARMCALC_CONFIG"); p != "" {
		defaultPath = p
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", defaultPath, "config file (env ARMCALC_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&a.source, "source", "", "game data source: file, postgres or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(a.newARCmd())
	rootCmd.AddCommand(a.newBatchCmd())
	rootCmd.AddCommand(a.newImportCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newValidateCmd())

	return rootCmd
}

// init loads the config, applies flag overrides and configures slog.
func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.source != "" {
		cfg.Source = a.source
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	// Логи в stderr, stdout остаётся под таблицы.
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", a.configPath, "source", cfg.Source)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
