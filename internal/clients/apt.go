package clients

import (
	"context"
	"fmt"
)

// AptClient installs operating-system packages.
type AptClient interface {
	Update(ctx context.Context) error
	Install(ctx context.Context, packages []string) error
}

// AptCLI drives apt-get. Failure of any invocation is fatal to the caller;
// there is no rollback of partially installed packages.
type AptCLI struct {
	Bin    string
	Sudo   bool
	Runner Runner
}

// NewAptCLI builds an AptCLI.
func NewAptCLI(r Runner, sudo bool) *AptCLI {
	return &AptCLI{Bin: "apt-get", Sudo: sudo, Runner: r}
}

func (a *AptCLI) run(ctx context.Context, args ...string) error {
	name := a.Bin
	if a.Sudo {
		args = append([]string{a.Bin}, args...)
		name = "sudo"
	}
	if _, _, err := a.Runner.Run(ctx, name, args...); err != nil {
		return err
	}
	return nil
}

// Update refreshes the package index.
func (a *AptCLI) Update(ctx context.Context) error {
	return a.run(ctx, "update")
}

// Install installs the named packages non-interactively.
func (a *AptCLI) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	args := append([]string{"install", "-y"}, packages...)
	if err := a.run(ctx, args...); err != nil {
		return fmt.Errorf("install packages %v: %w", packages, err)
	}
	return nil
}
