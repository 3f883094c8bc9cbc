package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadConfig("", false)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.Autoplay.Enabled || cfg.Autoplay.DelayMs != 4000 {
		t.Fatalf("autoplay = %+v", cfg.Autoplay)
	}
	if !cfg.Autoplay.PauseOnHover || !cfg.Autoplay.PauseOnFocus || !cfg.Autoplay.StopOnInteraction {
		t.Fatalf("pause flags = %+v", cfg.Autoplay)
	}
	if cfg.APIAddr != "127.0.0.1:3000" {
		t.Errorf("APIAddr = %q", cfg.APIAddr)
	}
	if want := filepath.Join(home, ".local", "share", "marquee", "marquee.duckdb"); cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
	if cfg.QueryTimeout != 30*time.Second {
		t.Errorf("QueryTimeout = %v", cfg.QueryTimeout)
	}
	if cfg.ConfigPath != "" {
		t.Errorf("ConfigPath = %q, want empty without a file", cfg.ConfigPath)
	}
	if cfg.Backup.Enabled || cfg.Backup.Keep != 24 || cfg.Backup.Interval != 6*time.Hour {
		t.Errorf("Backup = %+v", cfg.Backup)
	}
	if want := filepath.Join(home, ".local", "share", "marquee", "backups"); cfg.Backup.Dir != want {
		t.Errorf("Backup.Dir = %q, want %q", cfg.Backup.Dir, want)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MARQUEE_PAUSE_ON_FOCUS", "false")

	path := filepath.Join(t.TempDir(), "config.yml")
	body := "autoplay-delay-ms: 500\nstop-on-interaction: false\napi-port: 8080\ndb-path: ~/data/m.duckdb\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Autoplay.DelayMs != 500 || cfg.Autoplay.Interval() != 1200*time.Millisecond {
		t.Errorf("delay = %d interval = %v", cfg.Autoplay.DelayMs, cfg.Autoplay.Interval())
	}
	if cfg.Autoplay.StopOnInteraction || cfg.Autoplay.PauseOnFocus {
		t.Errorf("autoplay = %+v", cfg.Autoplay)
	}
	if cfg.APIAddr != "127.0.0.1:8080" {
		t.Errorf("APIAddr = %q", cfg.APIAddr)
	}
	if cfg.DBPath != filepath.Join(home, "data", "m.duckdb") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if !cfg.Debug || cfg.ConfigPath != path {
		t.Errorf("Debug = %v ConfigPath = %q", cfg.Debug, cfg.ConfigPath)
	}
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MARQUEE_API_PORT", "70000")
	if _, err := loadConfig("", false); err == nil {
		t.Fatal("expected error for api-port 70000")
	}
}

func TestSeedCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	seedPath := filepath.Join(t.TempDir(), "seed.yml")
	body := "testimonials:\n  - quote: Calm.\n    author: Ana\n  - quote: Fast.\n    author: Bo\n"
	if err := os.WriteFile(seedPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"seed", seedPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".local", "share", "marquee", "marquee.duckdb")); err != nil {
		t.Fatalf("database not created: %v", err)
	}
}
