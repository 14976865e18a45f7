package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, int, error)
}

// ExecRunner executes commands with os/exec. ExtraEnv entries are appended to
// the inherited environment so composed search paths reach the tool.
type ExecRunner struct {
	ExtraEnv []string
}

// Run executes a command and returns combined output and exit code.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(r.ExtraEnv) > 0 {
		cmd.Env = append(os.Environ(), r.ExtraEnv...)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	output := out.String()
	if err == nil {
		return output, 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output, exitErr.ExitCode(), fmt.Errorf("%s %v failed: %w", name, args, err)
	}
	return output, -1, fmt.Errorf("%s %v failed: %w", name, args, err)
}
