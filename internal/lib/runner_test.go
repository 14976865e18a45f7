package lib

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExecRunnerEmptyCommand(t *testing.T) {
	runner := &ExecRunner{}
	_, err := runner.Run(context.Background(), RunRequest{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExecRunnerDryRunSkipsMutating(t *testing.T) {
	runner := &ExecRunner{DryRun: true}
	res, err := runner.Run(context.Background(), RunRequest{Cmd: "false", Mutating: true})
	if err != nil {
		t.Fatalf("dry-run should not execute: %v", err)
	}
	if res.ExitCode != 0 || res.Stdout != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestExecRunnerCapturesOutput(t *testing.T) {
	runner := &ExecRunner{}
	res, err := runner.Run(context.Background(), RunRequest{Cmd: "sh", Args: []string{"-c", "echo out; echo err >&2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "out" || strings.TrimSpace(res.Stderr) != "err" {
		t.Fatalf("unexpected capture: %+v", res)
	}
}

func TestExecRunnerFailureWrapsCommandError(t *testing.T) {
	runner := &ExecRunner{}
	res, err := runner.Run(context.Background(), RunRequest{Cmd: "sh", Args: []string{"-c", "exit 3"}})
	var cerr *CommandError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected command error, got %v", err)
	}
	if cerr.ExitCode != 3 || res.ExitCode != 3 {
		t.Fatalf("exit code not propagated: %+v", cerr)
	}
}

func TestExecRunnerPassesEnv(t *testing.T) {
	runner := &ExecRunner{}
	res, err := runner.Run(context.Background(), RunRequest{
		Cmd:  "sh",
		Args: []string{"-c", "printf %s \"$HANGAR_TEST_VAR\""},
		Env:  []string{"HANGAR_TEST_VAR=plugin-path"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "plugin-path" {
		t.Fatalf("env not passed: %q", res.Stdout)
	}
}

func TestFormatCommand(t *testing.T) {
	if got := FormatCommand("gz", []string{"service", "-s", "/world/plains_world/create"}); got != "gz service -s /world/plains_world/create" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := FormatCommand("gz", nil); got != "gz" {
		t.Fatalf("unexpected format: %q", got)
	}
}
