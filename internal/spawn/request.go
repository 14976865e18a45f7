// Package spawn validates drone spawn requests and issues them to the
// simulator's entity-creation service.
package spawn

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skyloft-robotics/hangar/internal/lib"
)

// Raw carries unvalidated input from either call convention. Both front ends
// produce a Raw; NewRequest is the single validation path behind them.
type Raw struct {
	Name      string
	Model     string
	ModelFile string
	Coords    [3]string
	World     string
}

// ParsePositional parses the fixed-order convention:
//
//	name model x y z [world]
func ParsePositional(args []string) (Raw, error) {
	if len(args) < 5 {
		return Raw{}, &lib.ValidationError{Field: "arguments", Message: "usage: spawn <name> <model> <x> <y> <z> [world]"}
	}
	if len(args) > 6 {
		return Raw{}, &lib.ValidationError{Field: "arguments", Message: fmt.Sprintf("unexpected extra argument %q", args[6])}
	}
	raw := Raw{
		Name:   args[0],
		Model:  args[1],
		Coords: [3]string{args[2], args[3], args[4]},
	}
	if len(args) == 6 {
		raw.World = args[5]
	}
	return raw, nil
}

// ParseFlags parses the flag convention: positional name and coordinates with
// the model and world supplied as flag values.
func ParseFlags(args []string, model, world, modelFile string) (Raw, error) {
	if len(args) != 4 {
		return Raw{}, &lib.ValidationError{Field: "arguments", Message: "usage: add <name> <x> <y> <z> -m <model> [-w <world>]"}
	}
	if strings.TrimSpace(model) == "" {
		return Raw{}, &lib.ValidationError{Field: "model", Message: "is required (-m)"}
	}
	return Raw{
		Name:      args[0],
		Model:     model,
		ModelFile: modelFile,
		Coords:    [3]string{args[1], args[2], args[3]},
		World:     world,
	}, nil
}

// Request is the validated, immutable spawn request. It is constructed, sent
// once, and discarded; no record of it is kept.
type Request struct {
	Name      string
	Model     string
	ModelFile string
	World     string
	X, Y, Z   float64
}

// ModelResolver maps a model identifier (plus optional description-file
// override) to an existing file on disk.
type ModelResolver func(model, file string) (string, error)

// ResolveFromDirs searches <dir>/<model>/<file> in each model directory.
func ResolveFromDirs(dirs []string) ModelResolver {
	return func(model, file string) (string, error) {
		if file == "" {
			file = lib.DefaultModelFile
		}
		for _, dir := range dirs {
			if dir == "" {
				continue
			}
			candidate := filepath.Join(dir, model, file)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		return "", &lib.ValidationError{
			Field:   "model",
			Message: fmt.Sprintf("no %s found for %q under %s", file, model, strings.Join(dirs, ":")),
		}
	}
}

// NewRequest validates raw input and resolves the model file. Every failure
// is terminal for the invocation; nothing is sent to the simulator.
func NewRequest(raw Raw, resolve ModelResolver) (Request, error) {
	if err := lib.ValidateEntityName(raw.Name); err != nil {
		return Request{}, err
	}

	world := raw.World
	if world == "" {
		world = lib.DefaultWorld
	}
	if err := lib.ValidateWorldName(world); err != nil {
		return Request{}, err
	}

	var coords [3]float64
	for i, field := range [3]string{"x", "y", "z"} {
		if err := lib.ValidateCoordinate(field, raw.Coords[i]); err != nil {
			return Request{}, err
		}
		value, err := strconv.ParseFloat(raw.Coords[i], 64)
		if err != nil {
			return Request{}, &lib.ValidationError{Field: field, Message: "must be a decimal number"}
		}
		coords[i] = value
	}

	if strings.TrimSpace(raw.Model) == "" {
		return Request{}, &lib.ValidationError{Field: "model", Message: "is required"}
	}
	modelFile, err := resolve(raw.Model, raw.ModelFile)
	if err != nil {
		return Request{}, err
	}

	return Request{
		Name:      raw.Name,
		Model:     raw.Model,
		ModelFile: modelFile,
		World:     world,
		X:         coords[0],
		Y:         coords[1],
		Z:         coords[2],
	}, nil
}
