// Package preflight runs advisory diagnostics over the simulation
// workstation. Checks report pass/warn/fail but never halt anything;
// the hard preconditions live in the spawn path.
package preflight

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/skyloft-robotics/hangar/internal/clients"
	"github.com/skyloft-robotics/hangar/internal/envcomp"
	"github.com/skyloft-robotics/hangar/internal/lib"
)

type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

type CheckResult struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

type Report struct {
	Checks   []CheckResult `json:"checks"`
	Failures int           `json:"failures"`
	Warnings int           `json:"warnings"`
}

type Service struct {
	Logger   *slog.Logger
	Procs    clients.ProcessScanner
	Paths    lib.Paths
	GzBin    string
	LookPath func(string) (string, error)
}

func NewService(logger *slog.Logger, procs clients.ProcessScanner, paths lib.Paths) *Service {
	return &Service{Logger: logger, Procs: procs, Paths: paths, LookPath: exec.LookPath}
}

func (s *Service) Check(ctx context.Context) Report {
	report := Report{}
	add := func(name string, status Status, msg string) {
		report.Checks = append(report.Checks, CheckResult{Name: name, Status: status, Message: msg})
		switch status {
		case StatusFail:
			report.Failures++
		case StatusWarn:
			report.Warnings++
		}
	}

	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	gzBin := s.GzBin
	if gzBin == "" {
		gzBin = lib.DefaultGzBin
	}
	if path, err := lookPath(gzBin); err != nil {
		add("gz_binary", StatusFail, fmt.Sprintf("%s not found on PATH; install Gazebo or source the environment script", gzBin))
	} else {
		add("gz_binary", StatusPass, fmt.Sprintf("%s found: %s", gzBin, path))
	}

	if s.Procs != nil {
		running, err := s.Procs.SimulatorRunning(ctx)
		switch {
		case err != nil:
			add("simulator_running", StatusWarn, fmt.Sprintf("process check failed: %v", err))
		case running:
			add("simulator_running", StatusPass, "gz sim is running")
		default:
			add("simulator_running", StatusWarn, "gz sim is not running")
		}
	}

	// Plugin presence is advisory: composition proceeds without it and spawn
	// only needs the model file, not the plugin.
	if fileExists(s.Paths.PluginLibrary()) {
		add("plugin_library", StatusPass, fmt.Sprintf("ArduPilot plugin found: %s", s.Paths.PluginLibrary()))
	} else {
		add("plugin_library", StatusWarn, fmt.Sprintf("ArduPilot plugin not found at %s (run `hangar setup`)", s.Paths.PluginLibrary()))
	}

	if fileExists(s.Paths.SITLBinary()) {
		add("sitl_binary", StatusPass, fmt.Sprintf("SITL binary found: %s", s.Paths.SITLBinary()))
	} else {
		add("sitl_binary", StatusWarn, fmt.Sprintf("SITL binary not found at %s (run `hangar setup`)", s.Paths.SITLBinary()))
	}

	if dirExists(s.Paths.ModelsDir) {
		add("models_dir", StatusPass, fmt.Sprintf("models directory present: %s", s.Paths.ModelsDir))
	} else {
		add("models_dir", StatusWarn, fmt.Sprintf("models directory missing: %s", s.Paths.ModelsDir))
	}

	if fileExists(s.Paths.EnvScript) {
		add("env_script", StatusPass, fmt.Sprintf("environment script present: %s", s.Paths.EnvScript))
	} else {
		add("env_script", StatusWarn, fmt.Sprintf("environment script missing: %s (run `hangar setup`)", s.Paths.EnvScript))
	}

	add(s.sourcedCheck())

	if s.Logger != nil {
		s.Logger.DebugContext(ctx, "preflight complete",
			"checks", len(report.Checks), "failures", report.Failures, "warnings", report.Warnings)
	}
	return report
}

// sourcedCheck reports whether the startup file references the environment
// script with the exact line setup appends.
func (s *Service) sourcedCheck() (string, Status, string) {
	const name = "bashrc_source_line"
	data, err := os.ReadFile(s.Paths.Bashrc)
	if err != nil {
		return name, StatusWarn, fmt.Sprintf("cannot read %s: %v", s.Paths.Bashrc, err)
	}
	line := envcomp.SourceLine(s.Paths.EnvScript)
	for _, existing := range strings.Split(string(data), "\n") {
		if existing == line {
			return name, StatusPass, "startup file sources the environment script"
		}
	}
	return name, StatusWarn, fmt.Sprintf("%s does not source %s", s.Paths.Bashrc, s.Paths.EnvScript)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
