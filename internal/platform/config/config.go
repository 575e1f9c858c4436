package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	fileName       = "config.toml"
	BackendSQLite  = "sqlite"
	BackendRedis   = "redis"
	defaultDirName = ".lockedin"
)

type Config struct {
	DataDir    string `toml:"-" validate:"required"`
	DBPath     string `toml:"-"`
	LogPath    string `toml:"-"`
	NotesDir   string `toml:"-"`
	ReportsDir string `toml:"-"`

	Timer      TimerConfig      `toml:"timer"`
	Attendance AttendanceConfig `toml:"attendance"`
	Store      StoreConfig      `toml:"store"`
	Coach      CoachConfig      `toml:"coach"`
	Log        LogConfig        `toml:"log"`
	Notify     NotifyConfig     `toml:"notify"`
}

type TimerConfig struct {
	Presets        []int `toml:"presets" validate:"min=1,dive,gt=0,lte=240"`
	DefaultMinutes int   `toml:"default_minutes" validate:"gt=0,lte=240"`
}

type AttendanceConfig struct {
	Threshold float64 `toml:"threshold" validate:"gt=0,lte=80"`
}

type StoreConfig struct {
	Backend       string `toml:"backend" validate:"oneof=sqlite redis"`
	RedisAddr     string `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db" validate:"gte=0"`
	KeyPrefix     string `toml:"key_prefix"`
}

type CoachConfig struct {
	PluginPath     string `toml:"plugin_path"`
	PromptTemplate string `toml:"prompt_template"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"gt=0,lte=120"`
}

type LogConfig struct {
	Level       string `toml:"level" validate:"oneof=debug info warn error"`
	Format      string `toml:"format" validate:"oneof=json console"`
	Development bool   `toml:"development"`
}

type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultDataDir resolves ~/.lockedin.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

// New builds the configuration for dataDir, overlaying config.toml when the
// file exists. Paths derived from the data dir cannot be overridden.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Defaults(dataDir)
	path := filepath.Join(dataDir, fileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Defaults(dataDir string) Config {
	return Config{
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, "lockedin.db"),
		LogPath:    filepath.Join(dataDir, "lockedin.log"),
		NotesDir:   filepath.Join(dataDir, "notes"),
		ReportsDir: filepath.Join(dataDir, "reports"),
		Timer: TimerConfig{
			Presets:        []int{25, 50, 5, 2},
			DefaultMinutes: 25,
		},
		Attendance: AttendanceConfig{Threshold: 75},
		Store:      StoreConfig{Backend: BackendSQLite, KeyPrefix: "lockedin:"},
		Coach:      CoachConfig{TimeoutSeconds: 20},
		Log:        LogConfig{Level: "info", Format: "json"},
		Notify:     NotifyConfig{Enabled: true},
	}
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
