package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/railing/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Placement.PostWidth != 5 || cfg.Placement.TargetGap != 18 {
		t.Errorf("Placement = %+v, want defaults", cfg.Placement)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != "720h" {
		t.Errorf("Cache = %+v, want defaults", cfg.Cache)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := writeFile(t, `
[placement]
target_gap = 11.5

[cache]
enabled = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Placement.TargetGap != 11.5 {
		t.Errorf("TargetGap = %v, want 11.5", cfg.Placement.TargetGap)
	}
	if cfg.Placement.PostWidth != 5 {
		t.Errorf("PostWidth = %v, want default 5", cfg.Placement.PostWidth)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false")
	}
	if cfg.Cache.TTL != "720h" {
		t.Errorf("Cache.TTL = %q, want default", cfg.Cache.TTL)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"syntax", "[placement\npost_width = 5.0", "decode"},
		{"unknown key", "[placement]\npost_widht = 5\n", "unknown keys: placement.post_widht"},
		{"zero width", "[placement]\npost_width = 0.0\n", "post_width must be positive"},
		{"negative gap", "[placement]\ntarget_gap = -3.0\n", "target_gap must be positive"},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", "cache.ttl"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", "cannot be negative"},
		{"empty addr", "[server]\naddr = \"\"\n", "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if err == nil {
				t.Fatal("Load should fail")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestTTLDuration(t *testing.T) {
	tests := []struct {
		ttl  string
		want time.Duration
	}{
		{"", 0},
		{"0s", 0},
		{"90m", 90 * time.Minute},
		{"720h", 720 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.ttl, func(t *testing.T) {
			got, err := CacheConfig{TTL: tt.ttl}.TTLDuration()
			if err != nil {
				t.Fatalf("TTLDuration error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TTLDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Placement.PostWidth = 4
	cfg.Cache.RedisURL = "redis://localhost:6379/0"
	if err := cfg.Write(path); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Placement.PostWidth != 4 {
		t.Errorf("PostWidth = %v, want 4", got.Placement.PostWidth)
	}
	if got.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", got.Cache.RedisURL)
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", "railing", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
