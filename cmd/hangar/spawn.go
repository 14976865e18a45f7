package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skyloft-robotics/hangar/internal/clients"
	"github.com/skyloft-robotics/hangar/internal/config"
	"github.com/skyloft-robotics/hangar/internal/envcomp"
	"github.com/skyloft-robotics/hangar/internal/lib"
	"github.com/skyloft-robotics/hangar/internal/spawn"
)

type spawner interface {
	Spawn(ctx context.Context, req spawn.Request) (spawn.Result, error)
}

type spawnDeps struct {
	getenv       func(string) string
	loadManifest func(path string) (config.Manifest, error)
	newPaths     func(home, workspace string) (lib.Paths, error)
	resolver     func(dirs []string) spawn.ModelResolver
	newService   func(cmd *cobra.Command, gzBin string) spawner
}

func defaultSpawnDeps() spawnDeps {
	return spawnDeps{
		getenv:       os.Getenv,
		loadManifest: config.Load,
		newPaths:     lib.NewPaths,
		resolver:     spawn.ResolveFromDirs,
		newService: func(cmd *cobra.Command, gzBin string) spawner {
			runner := &clients.ExecRunner{}
			return spawn.NewService(newLogger(cmd), clients.NewGzCLI(runner, gzBin), clients.PsutilScanner{})
		},
	}
}

// newSpawnCmd is the fixed-order front end:
//
//	hangar spawn <name> <model> <x> <y> <z> [world]
func newSpawnCmd() *cobra.Command {
	return newSpawnCmdWithDeps(defaultSpawnDeps())
}

func newSpawnCmdWithDeps(deps spawnDeps) *cobra.Command {
	var (
		manifestPath string
		workspace    string
	)

	cmd := &cobra.Command{
		Use:   "spawn <name> <model> <x> <y> <z> [world]",
		Short: "Spawn a model into the running simulation",
		Args:  cobra.RangeArgs(5, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := spawn.ParsePositional(args)
			if err != nil {
				return err
			}
			return runSpawn(cmd.Context(), cmd, raw, manifestPath, workspace, deps)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "f", "", "Setup manifest (supplies world and gz binary defaults)")
	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace directory (default ~/simulation)")

	return cmd
}

// newAddCmd is the flag front end:
//
//	hangar add <name> <x> <y> <z> -m <model> [-w <world>]
func newAddCmd() *cobra.Command {
	return newAddCmdWithDeps(defaultSpawnDeps())
}

func newAddCmdWithDeps(deps spawnDeps) *cobra.Command {
	var (
		manifestPath string
		model        string
		world        string
		modelFile    string
		workspace    string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <x> <y> <z>",
		Short: "Spawn a model, with model and world given as flags",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := spawn.ParseFlags(args, model, world, modelFile)
			if err != nil {
				return err
			}
			return runSpawn(cmd.Context(), cmd, raw, manifestPath, workspace, deps)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "f", "", "Setup manifest (supplies world and gz binary defaults)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model directory name (required)")
	cmd.Flags().StringVarP(&world, "world", "w", "", "Target world (default from manifest, "+lib.DefaultWorld+")")
	cmd.Flags().StringVar(&modelFile, "model-file", "", "Description file inside the model directory (default "+lib.DefaultModelFile+")")
	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace directory (default ~/simulation)")

	return cmd
}

func runSpawn(ctx context.Context, cmd *cobra.Command, raw spawn.Raw, manifestPath, workspace string, deps spawnDeps) error {
	manifest, err := deps.loadManifest(manifestPath)
	if err != nil {
		return err
	}
	if workspace == "" {
		workspace = manifest.Workspace
	}
	paths, err := deps.newPaths("", workspace)
	if err != nil {
		return err
	}

	// Explicit world argument wins; the manifest supplies the default.
	if raw.World == "" {
		raw.World = manifest.World
	}
	req, err := spawn.NewRequest(raw, deps.resolver(modelDirs(paths, deps.getenv)))
	if err != nil {
		return err
	}

	result, err := deps.newService(cmd, manifest.GzBin).Spawn(ctx, req)
	if err != nil {
		if errors.Is(err, spawn.ErrSimulatorNotRunning) {
			return &exitError{Code: 1, Err: err}
		}
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "spawned %s in %s\n", result.Name, result.World)
	_, _ = fmt.Fprintf(out, "  cmd_vel:  %s\n", result.CmdVelTopic)
	_, _ = fmt.Fprintf(out, "  pose:     %s\n", result.PoseTopic)
	_, _ = fmt.Fprintf(out, "  odometry: %s\n", result.OdometryTopic)
	return nil
}

// modelDirs lists the directories searched for <model>/model.sdf: the
// workspace models dir first, then any resource-path entries already in the
// environment.
func modelDirs(paths lib.Paths, getenv func(string) string) []string {
	dirs := []string{paths.ModelsDir}
	for _, entry := range strings.Split(getenv("GZ_SIM_RESOURCE_PATH"), envcomp.Separator) {
		if entry = strings.TrimSpace(entry); entry != "" {
			dirs = append(dirs, entry)
		}
	}
	return dirs
}
