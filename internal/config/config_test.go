package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skyloft-robotics/hangar/internal/lib"
)

func TestDefault(t *testing.T) {
	m := Default()
	if err := Validate(m); err != nil {
		t.Fatalf("default manifest invalid: %v", err)
	}
	if m.World != lib.DefaultWorld {
		t.Fatalf("unexpected world: %s", m.World)
	}
	if len(m.Repos) != 2 {
		t.Fatalf("expected plugin and flight stack repos, got %d", len(m.Repos))
	}
	if m.Environment.PluginVar != "GZ_SIM_SYSTEM_PLUGIN_PATH" {
		t.Fatalf("unexpected plugin var: %s", m.Environment.PluginVar)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	m, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Packages) == 0 {
		t.Fatalf("expected default packages")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hangar.yaml")
	doc := `version: 1
workspace: sim_ws
world: test_world
packages:
  - gz-harmonic
repos:
  - name: ardupilot_gazebo
    url: https://github.com/ArduPilot/ardupilot_gazebo.git
    ref: main
    build:
      - [cmake, -S, ., -B, build]
    artifacts:
      - build/libArduPilotPlugin.so
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.World != "test_world" || m.Workspace != "sim_ws" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if m.GzBin != lib.DefaultGzBin {
		t.Fatalf("gz_bin default not applied: %s", m.GzBin)
	}
	if m.Environment.ResourceVar != "GZ_SIM_RESOURCE_PATH" {
		t.Fatalf("resource var default not applied: %s", m.Environment.ResourceVar)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Manifest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Manifest) {}},
		{name: "bad_version", mutate: func(m *Manifest) { m.Version = 2 }, wantErr: true},
		{name: "bad_repo_name", mutate: func(m *Manifest) { m.Repos[0].Name = "Bad Name" }, wantErr: true},
		{name: "duplicate_repo", mutate: func(m *Manifest) { m.Repos[1].Name = m.Repos[0].Name }, wantErr: true},
		{name: "missing_url", mutate: func(m *Manifest) { m.Repos[0].URL = "" }, wantErr: true},
		{name: "empty_build_step", mutate: func(m *Manifest) { m.Repos[0].Build = [][]string{{}} }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Default()
			tt.mutate(&m)
			err := Validate(m)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
