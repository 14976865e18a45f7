// Package provision drives the setup pipeline: OS packages, source repos and
// their build systems, build verification, and the generated environment
// script. Every step is an external-tool invocation; nothing is rebuilt here.
package provision

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/skyloft-robotics/hangar/internal/clients"
	"github.com/skyloft-robotics/hangar/internal/config"
	"github.com/skyloft-robotics/hangar/internal/envcomp"
	"github.com/skyloft-robotics/hangar/internal/lib"
)

// Service provisions a simulation workstation from a manifest.
type Service struct {
	Logger  *slog.Logger
	Paths   lib.Paths
	Apt     clients.AptClient
	Git     clients.GitClient
	Builder lib.Runner
	Getenv  func(string) string
	Out     io.Writer
	DryRun  bool

	SkipPackages bool
	SkipBuild    bool
}

// NewService builds a Service. Builder should share the DryRun setting.
func NewService(logger *slog.Logger, paths lib.Paths, apt clients.AptClient, git clients.GitClient, builder lib.Runner) *Service {
	return &Service{
		Logger:  logger,
		Paths:   paths,
		Apt:     apt,
		Git:     git,
		Builder: builder,
		Getenv:  os.Getenv,
		Out:     os.Stderr,
	}
}

// Run executes the full pipeline. The first failing step terminates the run;
// there is no rollback of completed steps.
func (s *Service) Run(ctx context.Context, manifest config.Manifest) error {
	if err := config.Validate(manifest); err != nil {
		return err
	}

	if !s.SkipPackages {
		if err := s.installPackages(ctx, manifest.Packages); err != nil {
			return err
		}
	}
	if err := s.syncRepos(ctx, manifest.Repos); err != nil {
		return err
	}
	if !s.SkipBuild {
		if err := s.buildRepos(ctx, manifest); err != nil {
			return err
		}
		if err := s.verifyArtifacts(manifest.Repos); err != nil {
			return err
		}
	}
	return s.writeEnvironment(manifest)
}

func (s *Service) report(format string, args ...any) {
	if s.Out != nil {
		_, _ = fmt.Fprintf(s.Out, format+"\n", args...)
	}
}

func (s *Service) installPackages(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	if s.DryRun {
		s.report("dry-run: would install %d packages", len(packages))
		return nil
	}
	s.report("installing %d packages...", len(packages))
	if err := s.Apt.Update(ctx); err != nil {
		return fmt.Errorf("package index update: %w", err)
	}
	if err := s.Apt.Install(ctx, packages); err != nil {
		return err
	}
	return nil
}

func (s *Service) syncRepos(ctx context.Context, repos []config.Repo) error {
	for _, repo := range repos {
		dir := s.Paths.RepoDir(repo.Name)
		if s.DryRun {
			s.report("dry-run: would sync %s to %s", repo.URL, dir)
			continue
		}
		s.report("syncing %s (%s)...", repo.Name, repo.Ref)
		if err := s.Git.Sync(ctx, repo.URL, dir, repo.Ref, repo.Submodules); err != nil {
			return err
		}
	}
	return nil
}

// buildRepos invokes each project's own build system inside its clone, with
// the composed environment passed explicitly so plugin and resource paths
// resolve without a sourced shell.
func (s *Service) buildRepos(ctx context.Context, manifest config.Manifest) error {
	env := envcomp.Env(s.composeVariables(manifest))
	for _, repo := range manifest.Repos {
		dir := s.Paths.RepoDir(repo.Name)
		for _, step := range repo.Build {
			s.report("building %s: %s", repo.Name, lib.FormatCommand(step[0], step[1:]))
			_, err := s.Builder.Run(ctx, lib.RunRequest{
				Cmd:      step[0],
				Args:     step[1:],
				Dir:      dir,
				Env:      env,
				Mutating: true,
			})
			if err != nil {
				return fmt.Errorf("build %s: %w", repo.Name, err)
			}
			if s.Logger != nil {
				s.Logger.DebugContext(ctx, "build step finished", "repo", repo.Name, "cmd", step[0])
			}
		}
	}
	return nil
}

// verifyArtifacts checks that each repo's expected build products exist at
// their fixed relative paths. A build that reported success but left no
// artifact is a distinct failure from the build itself failing.
func (s *Service) verifyArtifacts(repos []config.Repo) error {
	if s.DryRun {
		return nil
	}
	for _, repo := range repos {
		for _, artifact := range repo.Artifacts {
			path := filepath.Join(s.Paths.RepoDir(repo.Name), artifact)
			if info, err := os.Stat(path); err != nil || info.IsDir() {
				return fmt.Errorf("build verification: %s: expected artifact %s not found", repo.Name, path)
			}
		}
	}
	return nil
}

func (s *Service) composeVariables(manifest config.Manifest) []envcomp.Variable {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	layout := envcomp.Layout{
		PluginVar:    manifest.Environment.PluginVar,
		ResourceVar:  manifest.Environment.ResourceVar,
		PluginDirs:   []string{s.Paths.PluginBuildDir},
		ScanRoot:     manifest.Environment.ScanRoot,
		ResourceDirs: []string{s.Paths.ModelsDir, s.Paths.WorldsDir},
		PathDirs:     []string{s.Paths.SITLBinDir},
	}
	return envcomp.Build(layout, getenv)
}

// writeEnvironment writes the generated script and hooks it into the shell
// startup file exactly once.
func (s *Service) writeEnvironment(manifest config.Manifest) error {
	vars := s.composeVariables(manifest)
	if s.DryRun {
		s.report("dry-run: would write %s", s.Paths.EnvScript)
		return nil
	}
	if err := envcomp.WriteScript(s.Paths.EnvScript, vars); err != nil {
		return err
	}
	appended, err := envcomp.AppendSourceLine(s.Paths.Bashrc, envcomp.SourceLine(s.Paths.EnvScript))
	if err != nil {
		return err
	}
	if appended {
		s.report("added source line to %s", s.Paths.Bashrc)
	}
	s.report("environment written to %s", s.Paths.EnvScript)
	return nil
}

// Variables exposes the composed environment for the env command.
func (s *Service) Variables(manifest config.Manifest) []envcomp.Variable {
	return s.composeVariables(manifest)
}
