package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/config"
	"github.com/Veraticus/expense-tracker/internal/storage"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		slog.Error("expense tracker failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "💰 Personal expense tracker",
		Long: `expenses records what you spend in a local SQLite file and lets you
list, filter, summarize, update and delete entries from an interactive menu.

Enter -1 at any prompt to cancel and return to the menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
		RunE: runMenu,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/expenses/config.yaml)")
	cmd.PersistentFlags().String("db", config.DefaultDatabasePath, "path to the SQLite database file")
	cmd.PersistentFlags().String("driver", config.DefaultDatabaseDriver, "SQLite driver (sqlite3, sqlite)")
	cmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyDatabasePath, cmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag(config.KeyDatabaseDriver, cmd.PersistentFlags().Lookup("driver"))
	_ = viper.BindPFlag(config.KeyLogLevel, cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, cmd.PersistentFlags().Lookup("log-format"))

	cmd.AddCommand(versionCmd())

	return cmd
}

func initConfig(cfgFile string) error {
	config.SetDefaults(viper.GetViper())

	if err := config.ReadIn(viper.GetViper(), cfgFile); err != nil {
		return err
	}

	if err := common.SetupLogger(viper.GetString(config.KeyLogLevel), viper.GetString(config.KeyLogFormat)); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func runMenu(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(cmd.OutOrStdout())
	ctx, stop := interrupts.HandleInterrupts(cmd.Context())
	defer stop()

	store, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close database", "error", closeErr)
		}
	}()

	menu := cli.NewMenu(store, cmd.InOrStdin(), cmd.OutOrStdout())
	err = menu.Run(ctx)
	if errors.Is(err, context.Canceled) && interrupts.WasInterrupted() {
		return nil
	}
	return err
}

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context, settings config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(settings.DatabasePath, storage.WithDriver(settings.DatabaseDriver))
	if err != nil {
		return nil, common.NewUserError("Could not open expense database", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("Could not prepare expense database", err)
	}

	slog.Debug("expense database ready", "path", settings.DatabasePath, "driver", settings.DatabaseDriver)
	return store, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "expenses version %s\n", version)
		},
	}
}
