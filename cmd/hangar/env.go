package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyloft-robotics/hangar/internal/config"
	"github.com/skyloft-robotics/hangar/internal/envcomp"
	"github.com/skyloft-robotics/hangar/internal/lib"
)

// newEnvCmd prints the composed environment as export lines, suitable for
// eval in a shell that has not sourced the generated script.
func newEnvCmd() *cobra.Command {
	var (
		manifestPath string
		workspace    string
	)

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print composed simulation environment variables as export lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, err := config.Load(manifestPath)
			if err != nil {
				return err
			}
			if workspace == "" {
				workspace = manifest.Workspace
			}
			paths, err := lib.NewPaths("", workspace)
			if err != nil {
				return err
			}
			for _, v := range composeEnv(manifest, paths, os.Getenv) {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "export %s=%q\n", v.Name, v.Value); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "f", "", "Setup manifest")
	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace directory (default ~/simulation)")

	return cmd
}

func composeEnv(manifest config.Manifest, paths lib.Paths, getenv func(string) string) []envcomp.Variable {
	layout := envcomp.Layout{
		PluginVar:    manifest.Environment.PluginVar,
		ResourceVar:  manifest.Environment.ResourceVar,
		PluginDirs:   []string{paths.PluginBuildDir},
		ScanRoot:     manifest.Environment.ScanRoot,
		ResourceDirs: []string{paths.ModelsDir, paths.WorldsDir},
		PathDirs:     []string{paths.SITLBinDir},
	}
	return envcomp.Build(layout, getenv)
}
