package clients

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Entity-creation service types understood by the simulator.
const (
	entityFactoryType = "gz.msgs.EntityFactory"
	booleanType       = "gz.msgs.Boolean"
)

// GzClient talks to the simulator's service layer through the gz CLI.
type GzClient interface {
	CreateEntity(ctx context.Context, world, payload string, timeout time.Duration) (string, error)
	Version(ctx context.Context) (string, error)
}

// GzCLI implements GzClient.
type GzCLI struct {
	Bin    string
	Runner Runner
}

// NewGzCLI builds a GzCLI.
func NewGzCLI(r Runner, binary string) *GzCLI {
	if binary == "" {
		binary = "gz"
	}
	return &GzCLI{Bin: binary, Runner: r}
}

// WorldCreateService returns the world-scoped entity-creation endpoint.
func WorldCreateService(world string) string {
	return "/world/" + world + "/create"
}

// CreateEntity issues one synchronous request to the world's entity-creation
// service. The payload is the structured text form the simulator's service
// layer parses; success is the call's exit status, echoed output is returned
// for diagnostics.
func (g *GzCLI) CreateEntity(ctx context.Context, world, payload string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = time.Second
	}
	args := []string{
		"service", "-s", WorldCreateService(world),
		"--reqtype", entityFactoryType,
		"--reptype", booleanType,
		"--timeout", strconv.FormatInt(timeout.Milliseconds(), 10),
		"--req", payload,
	}
	out, _, err := g.Runner.Run(ctx, g.Bin, args...)
	if err != nil {
		return out, fmt.Errorf("entity creation for world %q: %w", world, err)
	}
	return out, nil
}

// Version reports the installed gz sim version, for diagnostics only.
func (g *GzCLI) Version(ctx context.Context) (string, error) {
	out, _, err := g.Runner.Run(ctx, g.Bin, "sim", "--version")
	if err != nil {
		return "", err
	}
	return out, nil
}
