package clients

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessScanner detects a running simulator by process-table inspection.
// No handshake is attempted; a matching command line is taken at face value.
type ProcessScanner interface {
	SimulatorRunning(ctx context.Context) (bool, error)
}

// PsutilScanner walks the live process table.
type PsutilScanner struct{}

// SimulatorRunning reports whether any process command line looks like a
// Gazebo simulation server.
func (PsutilScanner) SimulatorRunning(ctx context.Context) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range procs {
		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil {
			continue
		}
		if IsSimulatorCmdline(cmdline) {
			return true, nil
		}
	}
	return false, nil
}

// IsSimulatorCmdline matches the command lines Gazebo runs under: the `gz
// sim` front end, its ruby launcher, and the classic gzserver binary.
func IsSimulatorCmdline(cmdline string) bool {
	fields := strings.Fields(cmdline)
	for i, field := range fields {
		base := field
		if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
			base = base[idx+1:]
		}
		switch {
		case base == "gzserver":
			return true
		case base == "gz" && i+1 < len(fields) && fields[i+1] == "sim":
			return true
		case strings.HasPrefix(base, "gz-sim") && strings.Contains(base, "server"):
			return true
		}
	}
	return false
}
