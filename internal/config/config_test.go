package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Frames.Start != 1 || cfg.Frames.End != 250 || cfg.Frames.Step != 1 {
		t.Errorf("frame defaults = %+v", cfg.Frames)
	}
	if cfg.Output.Dir != "." {
		t.Errorf("expected output dir '.', got %q", cfg.Output.Dir)
	}
	if !cfg.Output.HalfNormals {
		t.Error("expected half_normals true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %q", cfg.Logging.Level)
	}
}

func TestLoadFromFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vatbake.yaml")
	content := `
frames:
  start: 10
  end: 60
output:
  dir: ./baked
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Frames.Start != 10 || cfg.Frames.End != 60 {
		t.Errorf("frames = %+v, want 10..60", cfg.Frames)
	}
	if cfg.Frames.Step != 1 {
		t.Errorf("step = %d, want default 1 preserved", cfg.Frames.Step)
	}
	if cfg.Output.Dir != "./baked" {
		t.Errorf("output dir = %q", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want default preserved", cfg.Logging.Level)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "vatbake.yaml")

	cfg := Default()
	cfg.Frames.End = 42
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if loaded.Frames.End != 42 {
		t.Errorf("end = %d, want 42", loaded.Frames.End)
	}
}
