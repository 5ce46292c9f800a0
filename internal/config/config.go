package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "momentum.db"
	DefaultLogName        = "momentum.log"
	DefaultBackendURL     = "http://localhost:5000"

	EnvConfigPath = "MOMENTUM_CONFIG"
	EnvBackendURL = "MOMENTUM_BACKEND_URL"
)

type Keymap struct {
	Quit         string `toml:"quit" validate:"required"`
	Add          string `toml:"add" validate:"required"`
	Up           string `toml:"up" validate:"required"`
	Down         string `toml:"down" validate:"required"`
	Delete       string `toml:"delete" validate:"required"`
	Confirm      string `toml:"confirm" validate:"required"`
	Cancel       string `toml:"cancel" validate:"required"`
	Edit         string `toml:"edit" validate:"required"`
	NextPane     string `toml:"next_pane" validate:"required"`
	NewList      string `toml:"new_list" validate:"required"`
	RemoveList   string `toml:"remove_list" validate:"required"`
	OpenSidebar  string `toml:"open_sidebar" validate:"required"`
	ToggleMode   string `toml:"toggle_mode" validate:"required"`
	AddColor     string `toml:"add_color" validate:"required"`
	FocusTimer   string `toml:"focus_timer" validate:"required"`
	ResetTimer   string `toml:"reset_timer" validate:"required"`
	ApplyPalette string `toml:"apply_palette" validate:"required"`
}

type Config struct {
	BackendURL            string `toml:"backend_url" validate:"required,url"`
	DBPath                string `toml:"db_path" validate:"required"`
	LogPath               string `toml:"log_path"`
	LogLevel              string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds" validate:"gte=0"`
	FocusMinutes          int    `toml:"focus_minutes" validate:"gte=1,lte=240"`
	Keys                  Keymap `toml:"keys"`
}

// ResolveConfigPath picks $MOMENTUM_CONFIG, then the user config dir, then
// the working directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "momentum", DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads path, writing a default config there first if the file
// does not exist. Relative db and log paths resolve next to the config file.
// The backend url from the environment wins over the file.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if env := strings.TrimSpace(os.Getenv(EnvBackendURL)); env != "" {
		cfg.BackendURL = env
	}
	cfg.DBPath = resolveRelative(path, cfg.DBPath)
	cfg.LogPath = resolveRelative(path, cfg.LogPath)
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func resolveRelative(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "file:") {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

// Default is the configuration written on first launch.
func Default() Config {
	return Config{
		BackendURL:            DefaultBackendURL,
		DBPath:                DefaultDBName,
		LogPath:               DefaultLogName,
		LogLevel:              "info",
		RequestTimeoutSeconds: 15,
		FocusMinutes:          25,
		Keys: Keymap{
			Quit:         "q",
			Add:          "a",
			Up:           "k",
			Down:         "j",
			Delete:       "d",
			Confirm:      "enter",
			Cancel:       "esc",
			Edit:         "e",
			NextPane:     "tab",
			NewList:      "n",
			RemoveList:   "x",
			OpenSidebar:  "s",
			ToggleMode:   "m",
			AddColor:     "c",
			FocusTimer:   "f",
			ResetTimer:   "r",
			ApplyPalette: "p",
		},
	}
}
