package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"momentum/internal/app"
	"momentum/internal/config"
	"momentum/internal/logging"
	"momentum/internal/remote"
	"momentum/internal/state"
	"momentum/internal/storage"
	"momentum/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type flags struct {
	configPath string
	backendURL string
	dbPath     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "momentum",
		Short:         "Personal to-do lists and focus timer in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&f.configPath, "config", "", "path to config.toml (default: $"+config.EnvConfigPath+" or the user config dir)")
	root.Flags().StringVar(&f.backendURL, "backend-url", "", "backend base URL, overrides the config file")
	root.Flags().StringVar(&f.dbPath, "db", "", "path to the local database, overrides the config file")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "momentum", version)
		},
	})
	return root
}

func loadConfig(f flags) (config.Config, error) {
	path := f.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if !applyOverrides(&cfg, f) {
		return cfg, nil
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyOverrides reports whether any flag changed the loaded config.
func applyOverrides(cfg *config.Config, f flags) bool {
	changed := false
	if f.backendURL != "" {
		cfg.BackendURL = f.backendURL
		changed = true
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
		changed = true
	}
	return changed
}

func run(cfg config.Config) error {
	logger, logFile, err := logging.New(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer logFile.Close()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	client, err := remote.New(cfg.BackendURL,
		remote.WithTimeout(time.Duration(cfg.RequestTimeoutSeconds)*time.Second),
		remote.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	svc := app.NewService(client, state.New(),
		app.WithMirror(storage.NewTodoMirror(store)),
		app.WithLogger(logger),
	)
	detach := svc.AttachMirror()
	defer detach()

	logger.Info("starting", "backend", cfg.BackendURL, "db", cfg.DBPath, "version", version)
	if err := ui.Run(svc, cfg, logger); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
