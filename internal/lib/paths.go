package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultWorld     = "plains_world"
	DefaultModelFile = "model.sdf"
	DefaultGzBin     = "gz"
	DefaultEnvScript = "gz_sim_env.sh"
	DefaultManifest  = "hangar.yaml"
)

// Paths centralizes the workstation layout used by hangar.
//
// Everything lives under a single workspace directory (default ~/simulation):
// cloned sources in src/, the ardupilot_gazebo plugin build products under
// src/ardupilot_gazebo/build, models and worlds alongside, and the generated
// environment script at the workspace root.
type Paths struct {
	Home           string
	Workspace      string
	SrcDir         string
	ModelsDir      string
	WorldsDir      string
	PluginBuildDir string
	SITLBinDir     string
	EnvScript      string
	Bashrc         string
}

func ResolveHome(home string) (string, error) {
	candidate := strings.TrimSpace(home)
	if candidate == "" {
		resolved, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		candidate = resolved
	}
	return filepath.Clean(candidate), nil
}

func NewPaths(home, workspace string) (Paths, error) {
	resolvedHome, err := ResolveHome(home)
	if err != nil {
		return Paths{}, err
	}
	ws := strings.TrimSpace(workspace)
	if ws == "" {
		ws = filepath.Join(resolvedHome, "simulation")
	} else if !filepath.IsAbs(ws) {
		ws = filepath.Join(resolvedHome, ws)
	}
	return Paths{
		Home:           resolvedHome,
		Workspace:      ws,
		SrcDir:         filepath.Join(ws, "src"),
		ModelsDir:      filepath.Join(ws, "models"),
		WorldsDir:      filepath.Join(ws, "worlds"),
		PluginBuildDir: filepath.Join(ws, "src", "ardupilot_gazebo", "build"),
		SITLBinDir:     filepath.Join(ws, "src", "ardupilot", "build", "sitl", "bin"),
		EnvScript:      filepath.Join(ws, DefaultEnvScript),
		Bashrc:         filepath.Join(resolvedHome, ".bashrc"),
	}, nil
}

func (p Paths) RepoDir(name string) string {
	return filepath.Join(p.SrcDir, name)
}

func (p Paths) PluginLibrary() string {
	return filepath.Join(p.PluginBuildDir, "libArduPilotPlugin.so")
}

func (p Paths) SITLBinary() string {
	return filepath.Join(p.SITLBinDir, "arducopter")
}
