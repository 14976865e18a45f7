package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyloft-robotics/hangar/internal/clients"
	"github.com/skyloft-robotics/hangar/internal/config"
	"github.com/skyloft-robotics/hangar/internal/lib"
	"github.com/skyloft-robotics/hangar/internal/provision"
)

type setupOptions struct {
	Manifest     string
	Workspace    string
	Sudo         bool
	DryRun       bool
	SkipPackages bool
	SkipBuild    bool
}

type setupDeps struct {
	loadManifest func(path string) (config.Manifest, error)
	newPaths     func(home, workspace string) (lib.Paths, error)
	newService   func(cmd *cobra.Command, paths lib.Paths, opts setupOptions) *provision.Service
}

func defaultSetupDeps() setupDeps {
	return setupDeps{
		loadManifest: config.Load,
		newPaths:     lib.NewPaths,
		newService: func(cmd *cobra.Command, paths lib.Paths, opts setupOptions) *provision.Service {
			logger := newLogger(cmd)
			tools := &clients.ExecRunner{}
			builder := &lib.ExecRunner{Logger: logger, DryRun: opts.DryRun}
			svc := provision.NewService(
				logger,
				paths,
				clients.NewAptCLI(tools, opts.Sudo),
				clients.NewGitCLI(tools, ""),
				builder,
			)
			svc.Out = cmd.ErrOrStderr()
			svc.DryRun = opts.DryRun
			svc.SkipPackages = opts.SkipPackages
			svc.SkipBuild = opts.SkipBuild
			return svc
		},
	}
}

func newSetupCmd() *cobra.Command {
	return newSetupCmdWithDeps(defaultSetupDeps())
}

func newSetupCmdWithDeps(deps setupDeps) *cobra.Command {
	var opts setupOptions

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install packages, build the flight stack, and write the environment script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd.Context(), cmd, opts, deps)
		},
	}

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "f", "", "Setup manifest (defaults to the built-in Gazebo Harmonic manifest)")
	cmd.Flags().StringVar(&opts.Workspace, "workspace", "", "Workspace directory (default ~/simulation)")
	cmd.Flags().BoolVar(&opts.Sudo, "sudo", os.Geteuid() != 0, "Run package installs through sudo")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print what would run without mutating anything")
	cmd.Flags().BoolVar(&opts.SkipPackages, "skip-packages", false, "Skip the apt package step")
	cmd.Flags().BoolVar(&opts.SkipBuild, "skip-build", false, "Skip repo builds and artifact verification")

	return cmd
}

func runSetup(ctx context.Context, cmd *cobra.Command, opts setupOptions, deps setupDeps) error {
	manifest, err := deps.loadManifest(opts.Manifest)
	if err != nil {
		return err
	}

	workspace := opts.Workspace
	if workspace == "" {
		workspace = manifest.Workspace
	}
	paths, err := deps.newPaths("", workspace)
	if err != nil {
		return err
	}

	return deps.newService(cmd, paths, opts).Run(ctx, manifest)
}
