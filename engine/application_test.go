package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/anima/engine/core"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadApplicationConfigTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
Name = "toml"
StartWidth = 320
StartHeight = 200
Backend = "headless"
LogLevel = "warn"

[Camera]
FovDegrees = 60.0
Position = { X = 0.0, Y = 1.0, Z = -2.0 }

[Headless]
Frames = 12
SnapshotEvery = 4
OutputDir = "out"
`)
	cfg, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatalf("LoadApplicationConfig() error = %v", err)
	}
	if cfg.Name != "toml" || cfg.StartWidth != 320 || cfg.StartHeight != 200 {
		t.Fatalf("unexpected window settings %+v", cfg)
	}
	if cfg.Backend != "headless" || cfg.LogLevel != core.WarnLevel {
		t.Fatalf("unexpected backend %q / level %q", cfg.Backend, cfg.LogLevel)
	}
	if cfg.Camera.FovDegrees != 60 || cfg.Camera.Position.Y != 1 || cfg.Camera.Position.Z != -2 {
		t.Fatalf("unexpected camera %+v", cfg.Camera)
	}
	// untouched keys keep their defaults
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 1000 || cfg.StartPosX != 100 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.Headless.Frames != 12 || cfg.Headless.SnapshotEvery != 4 || cfg.Headless.OutputDir != "out" {
		t.Fatalf("unexpected headless %+v", cfg.Headless)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadApplicationConfigYAML(t *testing.T) {
	path := writeConfig(t, "headless.yaml", `
name: yaml
start_width: 128
start_height: 96
backend: headless
camera:
  fov_degrees: 75
  position:
    z: -3
scene:
  rotation_speed: 30
headless:
  frames: 5
`)
	cfg, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatalf("LoadApplicationConfig() error = %v", err)
	}
	if cfg.Name != "yaml" || cfg.StartWidth != 128 || cfg.StartHeight != 96 {
		t.Fatalf("unexpected window settings %+v", cfg)
	}
	if cfg.Camera.FovDegrees != 75 || cfg.Camera.Position.Z != -3 || cfg.Camera.Far != 1000 {
		t.Fatalf("unexpected camera %+v", cfg.Camera)
	}
	if cfg.Scene.RotationSpeed != 30 || cfg.Headless.Frames != 5 {
		t.Fatalf("unexpected scene/headless %+v %+v", cfg.Scene, cfg.Headless)
	}
}

func TestLoadApplicationConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"unknown extension", "config.ini", "name=x"},
		{"broken toml", "config.toml", "Name = "},
		{"broken yaml", "config.yaml", "name: [unterminated"},
		{"empty window", "config.toml", "StartWidth = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadApplicationConfig(writeConfig(t, tt.file, tt.body)); err == nil {
				t.Fatalf("LoadApplicationConfig() succeeded")
			}
		})
	}

	_, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v", err)
	}
}
