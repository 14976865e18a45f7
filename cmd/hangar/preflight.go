package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/skyloft-robotics/hangar/internal/clients"
	"github.com/skyloft-robotics/hangar/internal/config"
	"github.com/skyloft-robotics/hangar/internal/lib"
	"github.com/skyloft-robotics/hangar/internal/preflight"
)

func newPreflightCmd() *cobra.Command {
	var (
		manifestPath string
		workspace    string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check that the workstation is ready to simulate",
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
			svc := preflight.NewService(newLogger(cmd), clients.PsutilScanner{}, paths)
			svc.GzBin = manifest.GzBin
			report := svc.Check(cmd.Context())

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				renderReport(cmd.OutOrStdout(), report)
			}

			if report.Failures > 0 {
				return &exitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "f", "", "Setup manifest (supplies workspace and gz binary defaults)")
	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace directory (default ~/simulation)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")

	return cmd
}

func renderReport(w io.Writer, report preflight.Report) {
	for _, check := range report.Checks {
		marker := "ok  "
		switch check.Status {
		case preflight.StatusWarn:
			marker = "warn"
		case preflight.StatusFail:
			marker = "FAIL"
		}
		_, _ = fmt.Fprintf(w, "%s  %-20s %s\n", marker, check.Name, check.Message)
	}
	_, _ = fmt.Fprintf(w, "%d failures, %d warnings\n", report.Failures, report.Warnings)
}
