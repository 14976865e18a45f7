package clients

import (
	"context"
	"strings"
	"testing"
)

// fakeRunner records invocations and replays canned results.
type fakeRunner struct {
	calls [][]string
	out   string
	code  int
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, int, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.out, f.code, f.err
}

func TestExecRunnerSuccess(t *testing.T) {
	out, code, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 || strings.TrimSpace(out) != "hello" {
		t.Fatalf("unexpected result: %q code=%d", out, code)
	}
}

func TestExecRunnerExitCode(t *testing.T) {
	_, code, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "exit 7")
	if err == nil {
		t.Fatalf("expected error")
	}
	if code != 7 {
		t.Fatalf("unexpected exit code: %d", code)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, code, err := ExecRunner{}.Run(context.Background(), "hangar-no-such-binary")
	if err == nil {
		t.Fatalf("expected error")
	}
	if code != -1 {
		t.Fatalf("unexpected exit code: %d", code)
	}
}

func TestExecRunnerExtraEnv(t *testing.T) {
	runner := ExecRunner{ExtraEnv: []string{"HANGAR_CLIENT_VAR=scanned"}}
	out, _, err := runner.Run(context.Background(), "sh", "-c", "printf %s \"$HANGAR_CLIENT_VAR\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "scanned" {
		t.Fatalf("extra env not passed: %q", out)
	}
}
