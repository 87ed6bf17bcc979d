package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadFromPath_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
snapping:
  threshold: 8
  distance: 0
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Snapping.Threshold != 8 || cfg.Snapping.Distance != 0 {
		t.Fatalf("snapping not applied: %+v", cfg.Snapping)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level not applied: %q", cfg.LogLevel)
	}
	// Untouched fields keep their defaults.
	if cfg.DefaultWindowSize != DefaultConfig().DefaultWindowSize {
		t.Fatalf("default_window_size should be untouched: %+v", cfg.DefaultWindowSize)
	}
	if cfg.DefaultWorkspace != "main" {
		t.Fatalf("default_workspace should be untouched: %q", cfg.DefaultWorkspace)
	}
}

func TestLoadFromPath_InvalidValuesRejected(t *testing.T) {
	cases := []struct {
		name    string
		content string
		path    string
	}{
		{"negative threshold", "snapping:\n  threshold: -1\n", "snapping.threshold"},
		{"zero min size", "min_window_size:\n  width: 0\n  height: 80\n", "min_window_size"},
		{"bad log level", "log_level: verbose\n", "log_level"},
		{"default below min", "default_window_size:\n  width: 50\n  height: 50\n", "default_window_size"},
		{"empty workspace", "default_workspace: \"\"\n", "default_workspace"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := LoadFromPath(path)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.path) {
				t.Fatalf("error should name %q, got %v", tc.path, err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Snapping.Threshold = 12
	cfg.Limits.MaxWorkspaces = 4

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", cfg, got)
	}
}
