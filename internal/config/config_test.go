package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memgraph.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Memory.Root != "memory" {
		t.Errorf("root = %q", cfg.Memory.Root)
	}
	if cfg.Memory.Output != "data/entities.json" {
		t.Errorf("output = %q", cfg.Memory.Output)
	}
}

func TestLoadEnvSubstitution(t *testing.T) {
	t.Setenv("MG_TEST_ROOT", "/srv/memory")

	path := writeConfig(t, `{
		"memory": {"root": "${MG_TEST_ROOT}", "output": "${MG_TEST_OUT:out.json}"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Memory.Root != "/srv/memory" {
		t.Errorf("root = %q, want env value", cfg.Memory.Root)
	}
	if cfg.Memory.Output != "out.json" {
		t.Errorf("output = %q, want default", cfg.Memory.Output)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestTickInterval(t *testing.T) {
	s := ScheduleConfig{Interval: "5m"}
	d, err := s.TickInterval()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 5*time.Minute {
		t.Errorf("interval = %v", d)
	}

	if d, err := (ScheduleConfig{}).TickInterval(); err != nil || d != 0 {
		t.Errorf("empty interval = (%v, %v), want (0, nil)", d, err)
	}

	if _, err := (ScheduleConfig{Interval: "often"}).TickInterval(); err == nil {
		t.Error("expected error for bad interval")
	}
}
