package device

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/uvcctl/internal/logging"
)

// Output is the captured result of one driver invocation
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes the external camera driver with the given arguments.
// A non-nil error means the invocation failed (could not start, timed out or
// exited non-zero); Output is still populated with whatever was captured.
type Runner interface {
	Run(ctx context.Context, args ...string) (Output, error)
}

// ExecRunner runs the driver binary via os/exec
type ExecRunner struct {
	// Path is the driver binary (default "v4l2-ctl", searched in PATH)
	Path string

	// Timeout bounds each invocation
	Timeout time.Duration

	logger *zap.Logger
}

// NewExecRunner creates a runner for the driver at path
func NewExecRunner(path string, timeout time.Duration, logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{
		Path:    path,
		Timeout: timeout,
		logger:  logger,
	}
}

// Run executes the driver and captures stdout/stderr
func (r *ExecRunner) Run(ctx context.Context, args ...string) (Output, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd := exec.CommandContext(timeoutCtx, r.Path, args...)
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	err := cmd.Run()

	out := Output{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
		} else {
			// Command failed to start
			out.ExitCode = -1
		}
	}

	if timeoutCtx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("%s timed out after %s: %w", r.Path, r.Timeout, context.DeadlineExceeded)
	}

	logging.LogDriverCall(r.logger, append([]string{r.Path}, args...), out.ExitCode, out.Duration, out.Stderr)

	return out, err
}
