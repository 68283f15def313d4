package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mgpai22/lyrisync/internal/lyric"
)

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("loading a missing config should not create it")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lyrisync.toml")
	content := `
[merge]
tolerance_ms = 120

[output]
order = ["translation", "original"]
word_by_word = true

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tolerance() != 120*time.Millisecond {
		t.Errorf("expected 120ms, got %v", cfg.Tolerance())
	}
	if !cfg.Output.WordByWord {
		t.Error("expected word_by_word to be set")
	}
	want := []lyric.Kind{lyric.KindTranslation, lyric.KindOriginal}
	if diff := cmp.Diff(want, cfg.TrackOrder()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if cfg.Playback.TickMs != 100 {
		t.Errorf("expected untouched tick default, got %d", cfg.Playback.TickMs)
	}
	if cfg.Annotate.Provider != "gemini" {
		t.Errorf("expected default provider, got %s", cfg.Annotate.Provider)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[merge\ntolerance_ms = 1"},
		{"negative tolerance", "[merge]\ntolerance_ms = -5"},
		{"duplicate order", "[output]\norder = [\"original\", \"orig\"]"},
		{"unknown track", "[output]\norder = [\"karaoke\"]"},
		{"bad level", "[logging]\nlevel = \"loud\""},
		{"bad provider", "[annotate]\nprovider = \"llama\""},
		{"zero tick", "[playback]\ntick_ms = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lyrisync.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "lyrisync.toml")

	cfg := DefaultConfig()
	cfg.Merge.ToleranceMs = 80
	cfg.Playback.OffsetSeconds = -0.25
	cfg.Annotate.Provider = "anthropic"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("config changed on reload (-want +got):\n%s", diff)
	}
}

func TestTrackOrderFallsBackToDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Order = []string{"nope"}
	if diff := cmp.Diff(lyric.DefaultOrder, cfg.TrackOrder()); diff != "" {
		t.Errorf("expected default order (-want +got):\n%s", diff)
	}
	cfg.Output.Order = nil
	if diff := cmp.Diff(lyric.DefaultOrder, cfg.TrackOrder()); diff != "" {
		t.Errorf("expected default order (-want +got):\n%s", diff)
	}
}
