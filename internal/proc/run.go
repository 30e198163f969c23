package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

// waitDelay bounds how long Wait blocks on pipes held open by grandchildren
// (tar -z forks gzip) after the direct child has been killed.
const waitDelay = 2 * time.Second

var execCommandContext = exec.CommandContext

// Spec describes an external command. Arguments are passed as an argv vector,
// never through a shell.
type Spec struct {
	Name    string
	Args    []string
	Dir     string
	Env     []string
	Timeout time.Duration
}

// Result reports how an external process finished.
type Result struct {
	ExitCode   int
	ExitNormal bool
	Stderr     string
	TimedOut   bool
	Canceled   bool
	// StartErr is set when the process could not be started at all.
	StartErr error
	Duration time.Duration
}

// Succeeded reports whether the process exited normally with status 0.
func (r Result) Succeeded() bool {
	return r.StartErr == nil && r.ExitNormal && r.ExitCode == 0
}

// Summary describes the exit for error messages, preferring captured stderr.
func (r Result) Summary() string {
	if stderr := strings.TrimSpace(r.Stderr); stderr != "" {
		return stderr
	}
	if r.StartErr != nil {
		return r.StartErr.Error()
	}
	if !r.ExitNormal {
		return messages.ProcessSignaled
	}
	return fmt.Sprintf(messages.ProcessExitFmt, r.ExitCode)
}

// Run executes spec synchronously and captures its standard error.
// It never returns an error: start failures, crashes, signals, timeouts and
// cancellations are all reported through the Result.
func Run(ctx context.Context, spec Spec) Result {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := execCommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = spec.Env
	}
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := Result{
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if cmd.ProcessState == nil {
		result.ExitCode = -1
		result.StartErr = err
		if result.StartErr == nil {
			result.StartErr = errors.New(messages.ProcessSignaled)
		}
		markContext(ctx, &result)
		return result
	}

	result.ExitCode = cmd.ProcessState.ExitCode()
	result.ExitNormal = cmd.ProcessState.Exited()
	if !result.Succeeded() {
		markContext(ctx, &result)
	}
	return result
}

// markContext records whether the context ended the process.
func markContext(ctx context.Context, result *Result) {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.TimedOut = true
	case errors.Is(ctx.Err(), context.Canceled):
		result.Canceled = true
	}
}

// Start runs spec asynchronously. onDone receives the Result exactly once.
func Start(ctx context.Context, spec Spec, onDone func(Result)) *Task[Result] {
	return Go(ctx, func(ctx context.Context) Result {
		return Run(ctx, spec)
	}, onDone)
}
