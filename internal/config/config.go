// Package config loads the setup manifest: which OS packages to install,
// which repositories to clone and build, and how the environment variables
// are laid out.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/skyloft-robotics/hangar/internal/lib"
)

var repoNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Manifest is the top-level setup manifest.
type Manifest struct {
	Version     int         `yaml:"version"`
	Workspace   string      `yaml:"workspace"`
	World       string      `yaml:"world"`
	GzBin       string      `yaml:"gz_bin"`
	Packages    []string    `yaml:"packages"`
	Repos       []Repo      `yaml:"repos"`
	Environment Environment `yaml:"environment"`
}

// Repo is one third-party project cloned and built through its own build
// system. Build steps are argv lists executed in the clone directory;
// artifacts are repo-relative paths that must exist after a successful build.
type Repo struct {
	Name       string     `yaml:"name"`
	URL        string     `yaml:"url"`
	Ref        string     `yaml:"ref"`
	Submodules bool       `yaml:"submodules"`
	Build      [][]string `yaml:"build"`
	Artifacts  []string   `yaml:"artifacts"`
}

// Environment names the search-path variables and the install prefix scanned
// for lib directories.
type Environment struct {
	PluginVar   string `yaml:"plugin_var"`
	ResourceVar string `yaml:"resource_var"`
	ScanRoot    string `yaml:"scan_root"`
}

// Default returns the manifest used when no file is given: Gazebo Harmonic
// with the ArduPilot integration plugin and ArduPilot SITL.
func Default() Manifest {
	return withDefaults(Manifest{
		Version: 1,
		Packages: []string{
			"gz-harmonic",
			"libgz-sim8-dev",
			"rapidjson-dev",
			"ros-humble-ros-gzharmonic",
			"build-essential",
			"cmake",
			"git",
			"python3-dev",
			"python3-pip",
		},
		Repos: []Repo{
			{
				Name: "ardupilot_gazebo",
				URL:  "https://github.com/ArduPilot/ardupilot_gazebo.git",
				Ref:  "main",
				Build: [][]string{
					{"cmake", "-S", ".", "-B", "build", "-DCMAKE_BUILD_TYPE=RelWithDebInfo"},
					{"cmake", "--build", "build", "-j4"},
				},
				Artifacts: []string{"build/libArduPilotPlugin.so"},
			},
			{
				Name:       "ardupilot",
				URL:        "https://github.com/ArduPilot/ardupilot.git",
				Ref:        "Copter-4.5",
				Submodules: true,
				Build: [][]string{
					{"./waf", "configure", "--board", "sitl"},
					{"./waf", "copter"},
				},
				Artifacts: []string{"build/sitl/bin/arducopter"},
			},
		},
	})
}

// Load parses a manifest file and applies defaults. An empty path yields the
// default manifest.
func Load(path string) (Manifest, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest %q: %w", path, err)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest %q: %w", path, err)
	}
	manifest = withDefaults(manifest)
	if err := Validate(manifest); err != nil {
		return Manifest{}, fmt.Errorf("manifest %q: %w", path, err)
	}
	return manifest, nil
}

func withDefaults(m Manifest) Manifest {
	if m.Version == 0 {
		m.Version = 1
	}
	if m.World == "" {
		m.World = lib.DefaultWorld
	}
	if m.GzBin == "" {
		m.GzBin = lib.DefaultGzBin
	}
	if m.Environment.PluginVar == "" {
		m.Environment.PluginVar = "GZ_SIM_SYSTEM_PLUGIN_PATH"
	}
	if m.Environment.ResourceVar == "" {
		m.Environment.ResourceVar = "GZ_SIM_RESOURCE_PATH"
	}
	if m.Environment.ScanRoot == "" {
		m.Environment.ScanRoot = "/usr/lib/x86_64-linux-gnu/gz-sim-8"
	}
	return m
}

// Validate rejects manifests that would make setup misbehave.
func Validate(m Manifest) error {
	if m.Version != 1 {
		return &lib.ValidationError{Field: "version", Message: fmt.Sprintf("unsupported version %d", m.Version)}
	}
	seen := make(map[string]struct{}, len(m.Repos))
	for _, repo := range m.Repos {
		if !repoNamePattern.MatchString(repo.Name) {
			return &lib.ValidationError{Field: "repo", Message: fmt.Sprintf("bad name %q", repo.Name)}
		}
		if _, dup := seen[repo.Name]; dup {
			return &lib.ValidationError{Field: "repo", Message: fmt.Sprintf("duplicate name %q", repo.Name)}
		}
		seen[repo.Name] = struct{}{}
		if repo.URL == "" {
			return &lib.ValidationError{Field: "repo", Message: fmt.Sprintf("%s: url is required", repo.Name)}
		}
		for _, step := range repo.Build {
			if len(step) == 0 || step[0] == "" {
				return &lib.ValidationError{Field: "repo", Message: fmt.Sprintf("%s: empty build step", repo.Name)}
			}
		}
	}
	return nil
}
