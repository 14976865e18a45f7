package spawn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/skyloft-robotics/hangar/internal/clients"
)

// ErrSimulatorNotRunning distinguishes a missing simulator from validation
// failures such as an unknown model.
var ErrSimulatorNotRunning = errors.New("no running gz sim process detected; start the simulator first")

// DefaultTimeout bounds the outbound service call.
const DefaultTimeout = time.Second

// Result reports a successful spawn and the topics the simulation bridge
// publishes for the entity by convention. The topics are derived from the
// name, not verified to exist.
type Result struct {
	Name          string
	World         string
	CmdVelTopic   string
	PoseTopic     string
	OdometryTopic string
}

// Topics returns the conventional per-model topic names.
func Topics(name string) (cmdVel, pose, odometry string) {
	base := "/model/" + name
	return base + "/cmd_vel", base + "/pose", base + "/odometry"
}

// Service issues spawn requests. One request, one call, no retry; the caller
// re-invokes after fixing whatever failed.
type Service struct {
	Logger  *slog.Logger
	Gz      clients.GzClient
	Procs   clients.ProcessScanner
	Timeout time.Duration
}

// NewService builds a Service with the default call timeout.
func NewService(logger *slog.Logger, gz clients.GzClient, procs clients.ProcessScanner) *Service {
	return &Service{Logger: logger, Gz: gz, Procs: procs, Timeout: DefaultTimeout}
}

// Spawn checks that a simulator is running, then issues exactly one
// entity-creation request for the request's world. Two concurrent spawns for
// the same name race inside the simulator; nothing here serializes them.
func (s *Service) Spawn(ctx context.Context, req Request) (Result, error) {
	running, err := s.Procs.SimulatorRunning(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("inspect process table: %w", err)
	}
	if !running {
		return Result{}, ErrSimulatorNotRunning
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	payload := EncodeFactoryRequest(req)
	out, err := s.Gz.CreateEntity(ctx, req.World, payload, timeout)
	if err != nil {
		return Result{}, err
	}
	if s.Logger != nil {
		s.Logger.InfoContext(ctx, "entity created",
			"name", req.Name, "model", req.Model, "world", req.World, "reply", out)
	}

	result := Result{Name: req.Name, World: req.World}
	result.CmdVelTopic, result.PoseTopic, result.OdometryTopic = Topics(req.Name)
	return result, nil
}

// EncodeFactoryRequest renders the structured text form the simulator's
// service layer parses. Orientation is not settable through this interface;
// the pose carries position only.
func EncodeFactoryRequest(req Request) string {
	return fmt.Sprintf(
		`sdf_filename: %q, name: %q, pose: {position: {x: %s, y: %s, z: %s}}`,
		req.ModelFile, req.Name,
		formatCoord(req.X), formatCoord(req.Y), formatCoord(req.Z),
	)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
