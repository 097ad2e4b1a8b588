package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobfiller/internal/config"
	"github.com/jonathan/jobfiller/internal/logging"
	"github.com/jonathan/jobfiller/internal/observability"
	"github.com/jonathan/jobfiller/internal/service"
	"github.com/jonathan/jobfiller/internal/storage"
	"github.com/jonathan/jobfiller/internal/types"
)

var (
	configPath  string
	storageFlag string
	sqlitePath  string
	logLevel    string
	verbose     bool

	// cfg is resolved once per invocation by loadConfig.
	cfg config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage backend: memory, sqlite, postgres or redis")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite-path", "", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed results")
}

// loadConfig resolves configuration with precedence flags > env > file > defaults.
func loadConfig(_ *cobra.Command, _ []string) error {
	file := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		file = *loaded
	}

	env := config.FromEnv()
	fileMerged := file.MergeWithDefaults(config.Defaults())
	resolved := env.MergeWithDefaults(fileMerged)
	resolved.UseBrowser = file.UseBrowser

	if storageFlag != "" {
		resolved.Storage = storageFlag
	}
	if sqlitePath != "" {
		resolved.SQLitePath = sqlitePath
	}
	if logLevel != "" {
		resolved.LogLevel = logLevel
	}

	if err := resolved.Validate(); err != nil {
		return err
	}
	logging.Init(resolved.Logging())
	cfg = resolved
	return nil
}

// openService connects the configured storage backend and builds the service.
// Callers close the returned service's store when done.
func openService(ctx context.Context) (*service.Service, error) {
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}

	svc := service.New(storage.NewStore(backend), service.NewClientFactory(cfg.OpenAIBaseURL))
	return svc.WithEnvCredentials(types.APISettings{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
	}), nil
}

// withService runs fn against a freshly opened service and closes it afterwards.
func withService(cmd *cobra.Command, fn func(ctx context.Context, svc *service.Service) error) error {
	ctx := logging.WithContext(cmd.Context())
	svc, err := openService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Store().Close() }()
	return fn(ctx, svc)
}

// report prints the outcome message. Failures carrying a cause become command errors.
func report(cmd *cobra.Command, r types.Result) error {
	if !r.Success && r.Err != nil {
		return errors.New(r.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), r.Message)
	return nil
}

func printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
