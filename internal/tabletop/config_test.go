package tabletop

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("expected defaults without a config file, got %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Fatalf("expected 1280x720 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.AutoPan.Border != 30 || cfg.AutoPan.IntervalMS != 100 || cfg.AutoPan.Step != 24 {
		t.Fatalf("expected default pan tuning, got %+v", cfg.AutoPan)
	}
	if cfg.Log.File != "tablefog.log" || cfg.Log.MaxSizeMB != 5 || cfg.Log.MaxBackups != 3 || cfg.Log.MaxAgeDays != 14 {
		t.Fatalf("expected default log rotation, got %+v", cfg.Log)
	}
	if cfg.Cache.MaxCostMB != 64 {
		t.Fatalf("expected 64MB cache default, got %d", cfg.Cache.MaxCostMB)
	}
	if cfg.Demo.Seed != 1 {
		t.Fatalf("expected demo seed 1, got %d", cfg.Demo.Seed)
	}
}

func TestLoadConfig_FileOverridesMergeWithDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("window:\n  width: 1600\nautopan:\n  interval_ms: 50\ndemo:\n  seed: 9\n")
	if err := os.WriteFile(filepath.Join(dir, "tablefog.yaml"), yaml, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.Window.Width != 1600 {
		t.Fatalf("expected overridden width 1600, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Fatalf("expected default height kept, got %d", cfg.Window.Height)
	}
	if cfg.AutoPan.IntervalMS != 50 || cfg.AutoPan.Border != 30 {
		t.Fatalf("expected interval 50 with default border, got %+v", cfg.AutoPan)
	}
	if cfg.Demo.Seed != 9 {
		t.Fatalf("expected seed 9, got %d", cfg.Demo.Seed)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tablefog.yaml"), []byte("window: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}

func TestConfig_PanSettings(t *testing.T) {
	var cfg Config
	cfg.AutoPan.Border = 50
	cfg.AutoPan.IntervalMS = 35
	cfg.AutoPan.Step = 7

	ps := cfg.PanSettings()
	if ps.Border != 50 || ps.Interval != 35*time.Millisecond || ps.Step != 7 {
		t.Fatalf("expected tuning carried over, got %+v", ps)
	}
}
