package device

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/process"
)

// UsageChecker reports whether some other process currently holds the device open
type UsageChecker interface {
	InUse(ctx context.Context, devicePath string) (bool, error)
}

// ProcessScanner scans the process table for open handles on the device node.
// Processes whose file table cannot be read (other users without privileges)
// are skipped.
type ProcessScanner struct {
	// self is excluded from the scan
	self int32
}

// NewProcessScanner creates a scanner that ignores the current process
func NewProcessScanner() *ProcessScanner {
	return &ProcessScanner{self: int32(os.Getpid())}
}

// InUse returns true when another process has devicePath open
func (p *ProcessScanner) InUse(ctx context.Context, devicePath string) (bool, error) {
	targets := map[string]bool{devicePath: true}
	if resolved, err := filepath.EvalSymlinks(devicePath); err == nil {
		targets[resolved] = true
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list processes: %w", err)
	}

	for _, proc := range procs {
		if proc.Pid == p.self {
			continue
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}

		files, err := proc.OpenFilesWithContext(ctx)
		if err != nil {
			continue
		}
		for _, f := range files {
			if targets[f.Path] {
				return true, nil
			}
		}
	}

	return false, nil
}
