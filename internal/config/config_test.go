package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME and the working directory at empty temp dirs so the
// developer's own config never leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != "file" || cfg.Storage.Key != "tasks" || cfg.Theme != "classic" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.IDs.Min != 1 || cfg.IDs.Max != 100 {
		t.Fatalf("unexpected id range: %+v", cfg.IDs)
	}
	if cfg.Log.File != filepath.Join(home, ".kanban", "kanban.log") {
		t.Fatalf("unexpected log file: %s", cfg.Log.File)
	}
}

func TestProjectOverridesGlobal(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".kanban", "config.yaml"), "theme: neon\nstorage:\n  key: global\n")
	cwd, _ := os.Getwd()
	writeFile(t, filepath.Join(cwd, ".kanban", "config.yaml"), "storage:\n  key: project\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "neon" {
		t.Errorf("theme: got %q, want neon", cfg.Theme)
	}
	if cfg.Storage.Key != "project" {
		t.Errorf("key: got %q, want project", cfg.Storage.Key)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("backend default lost: %q", cfg.Storage.Backend)
	}
}

func TestEnvWins(t *testing.T) {
	isolate(t)
	extra := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, extra, "storage:\n  backend: file\n  redis:\n    addr: file:6379\n")
	t.Setenv("KANBAN_STORAGE_BACKEND", "redis")
	t.Setenv("KANBAN_STORAGE_REDIS_ADDR", "env:6379")

	cfg, err := Load(extra)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.Redis.Addr != "env:6379" {
		t.Fatalf("env did not override: %+v", cfg.Storage)
	}
}

func TestExplicitFileMustExist(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	isolate(t)
	extra := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, extra, "storage:\n  backend: sqlite\n")
	if _, err := Load(extra); err == nil {
		t.Fatal("expected validation error")
	}

	cfg := Default()
	cfg.IDs.Max = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected id range error")
	}
}
