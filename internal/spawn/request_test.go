package spawn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skyloft-robotics/hangar/internal/lib"
)

func writeModel(t *testing.T, dir, model, file string) string {
	t.Helper()
	modelDir := filepath.Join(dir, model)
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		t.Fatalf("mkdir model: %v", err)
	}
	path := filepath.Join(modelDir, file)
	if err := os.WriteFile(path, []byte("<sdf/>"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

func TestParsePositional(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Raw
		wantErr bool
	}{
		{
			name: "with_world",
			args: []string{"drone1", "Cube", "0", "0", "2", "plains_world"},
			want: Raw{Name: "drone1", Model: "Cube", Coords: [3]string{"0", "0", "2"}, World: "plains_world"},
		},
		{
			name: "world_omitted",
			args: []string{"drone1", "Cube", "1.5", "-2", ".5"},
			want: Raw{Name: "drone1", Model: "Cube", Coords: [3]string{"1.5", "-2", ".5"}},
		},
		{name: "too_few", args: []string{"drone1", "Cube", "0", "0"}, wantErr: true},
		{name: "too_many", args: []string{"a", "b", "0", "0", "0", "w", "extra"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePositional(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("want %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	got, err := ParseFlags([]string{"drone1", "0", "0", "2"}, "Cube", "plains_world", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Raw{Name: "drone1", Model: "Cube", Coords: [3]string{"0", "0", "2"}, World: "plains_world"}
	if got != want {
		t.Fatalf("want %+v, got %+v", want, got)
	}

	if _, err := ParseFlags([]string{"drone1", "0", "0"}, "Cube", "", ""); err == nil {
		t.Fatalf("expected error for missing coordinate")
	}
	if _, err := ParseFlags([]string{"drone1", "0", "0", "2"}, "", "", ""); err == nil {
		t.Fatalf("expected error for missing model")
	}
}

func TestNewRequest(t *testing.T) {
	modelsDir := t.TempDir()
	modelPath := writeModel(t, modelsDir, "Cube", lib.DefaultModelFile)
	resolve := ResolveFromDirs([]string{modelsDir})

	req, err := NewRequest(Raw{
		Name:   "drone1",
		Model:  "Cube",
		Coords: [3]string{"0", "0", "2"},
	}, resolve)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.World != lib.DefaultWorld {
		t.Fatalf("default world not applied: %s", req.World)
	}
	if req.ModelFile != modelPath {
		t.Fatalf("unexpected model file: %s", req.ModelFile)
	}
	if req.X != 0 || req.Y != 0 || req.Z != 2 {
		t.Fatalf("unexpected coordinates: %+v", req)
	}
}

func TestNewRequestRejectsBadCoordinate(t *testing.T) {
	modelsDir := t.TempDir()
	writeModel(t, modelsDir, "Cube", lib.DefaultModelFile)
	resolve := ResolveFromDirs([]string{modelsDir})

	_, err := NewRequest(Raw{
		Name:   "drone1",
		Model:  "Cube",
		Coords: [3]string{"abc", "0", "2"},
	}, resolve)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !lib.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "x") {
		t.Fatalf("diagnostic should name the coordinate: %v", err)
	}
}

func TestNewRequestRejectsMissingModel(t *testing.T) {
	resolve := ResolveFromDirs([]string{t.TempDir()})
	_, err := NewRequest(Raw{
		Name:   "drone1",
		Model:  "Cube",
		Coords: [3]string{"0", "0", "2"},
	}, resolve)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model") {
		t.Fatalf("diagnostic should name the model: %v", err)
	}
}

func TestNewRequestRejectsBadName(t *testing.T) {
	resolve := ResolveFromDirs([]string{t.TempDir()})
	if _, err := NewRequest(Raw{Name: "1bad", Model: "Cube", Coords: [3]string{"0", "0", "0"}}, resolve); err == nil {
		t.Fatalf("expected error")
	}
}

func TestResolveFromDirsOverride(t *testing.T) {
	modelsDir := t.TempDir()
	path := writeModel(t, modelsDir, "Cube", "model.sdf.erb")
	resolve := ResolveFromDirs([]string{modelsDir})

	got, err := resolve("Cube", "model.sdf.erb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Fatalf("unexpected path: %s", got)
	}

	if _, err := resolve("Cube", ""); err == nil {
		t.Fatalf("default file name should not match override-only model")
	}
}

func TestResolveFromDirsSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeModel(t, second, "Cube", lib.DefaultModelFile)
	firstPath := writeModel(t, first, "Cube", lib.DefaultModelFile)

	resolve := ResolveFromDirs([]string{first, second})
	got, err := resolve("Cube", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != firstPath {
		t.Fatalf("expected first directory to win, got %s", got)
	}
}
