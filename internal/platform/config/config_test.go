package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lockedin/internal/platform/config"
)

func TestNewWithoutFileUsesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "lockedin.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.Timer.DefaultMinutes != 25 || cfg.Attendance.Threshold != 75 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Store.Backend != config.BackendSQLite {
		t.Fatalf("expected sqlite backend, got %s", cfg.Store.Backend)
	}
}

func TestNewOverlaysTOMLFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	raw := `
[timer]
presets = [30, 10]
default_minutes = 30

[attendance]
threshold = 80.0

[log]
level = "debug"
format = "console"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Timer.DefaultMinutes != 30 || len(cfg.Timer.Presets) != 2 {
		t.Fatalf("expected timer overlay, got %+v", cfg.Timer)
	}
	if cfg.Attendance.Threshold != 80 || cfg.Log.Level != "debug" {
		t.Fatalf("expected overlay values, got %+v", cfg)
	}
	if cfg.DataDir != dir {
		t.Fatalf("data dir must not be overridden, got %s", cfg.DataDir)
	}
}

func TestNewRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"threshold":       "[attendance]\nthreshold = 120.0\n",
		"above safe band": "[attendance]\nthreshold = 85.0\n",
		"backend":         "[store]\nbackend = \"mongo\"\n",
		"redis":           "[store]\nbackend = \"redis\"\n",
		"level":           "[log]\nlevel = \"loud\"\n",
	}
	for name, raw := range cases {
		name, raw := name, raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := config.New(dir); err == nil || !strings.Contains(err.Error(), "invalid config") {
				t.Fatalf("expected invalid config error, got %v", err)
			}
		})
	}
}

func TestNewRequiresDataDir(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("expected error for empty data dir")
	}
}
