// Package redeploy asks the input-method framework to reload its configuration.
package redeploy

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
	"github.com/conn-castle/xiaobait9-tools/internal/proc"
)

// DefaultTimeout bounds the whole primary-then-fallback sequence.
const DefaultTimeout = time.Minute

// ErrRedeployFailure reports that neither reload command succeeded.
var ErrRedeployFailure = errors.New("redeploy failed")

var (
	// DefaultPrimary rebuilds the Rime deployment.
	DefaultPrimary = []string{"rime_deployer"}
	// DefaultFallback asks fcitx5 to reload when rime_deployer is unavailable.
	DefaultFallback = []string{"fcitx5-remote", "-r"}
)

var redeployFormats = proc.Formats{
	Failed:   messages.RedeployFailedFmt,
	TimedOut: messages.RedeployTimedOutFmt,
	Canceled: messages.RedeployCanceledFmt,
}

// Options controls the reload commands.
type Options struct {
	Primary  []string
	Fallback []string
	// Timeout bounds both attempts together; zero uses DefaultTimeout.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Result reports the final attempt. Stderr accumulates the output of every attempt.
type Result struct {
	proc.Result
	UsedFallback bool
	timeout      time.Duration
}

// Err returns an error of kind ErrRedeployFailure unless the reload succeeded.
func (r Result) Err() error {
	if r.Succeeded() {
		return nil
	}
	return &proc.ProcessError{
		Kind:    ErrRedeployFailure,
		Result:  r.Result,
		Timeout: r.timeout,
		Formats: redeployFormats,
	}
}

// Invoker runs the primary reload command and falls back when it is unavailable or fails.
type Invoker struct {
	primary  []string
	fallback []string
	timeout  time.Duration
	log      zerolog.Logger
}

// New returns an Invoker with defaults applied.
func New(opts Options) *Invoker {
	inv := &Invoker{
		primary:  opts.Primary,
		fallback: opts.Fallback,
		timeout:  opts.Timeout,
		log:      opts.Logger.With().Str("component", "redeploy").Logger(),
	}
	if len(inv.primary) == 0 {
		inv.primary = DefaultPrimary
	}
	if len(inv.fallback) == 0 {
		inv.fallback = DefaultFallback
	}
	if inv.timeout <= 0 {
		inv.timeout = DefaultTimeout
	}
	return inv
}

// Redeploy reloads the input method without blocking the caller.
// onDone may be nil; it is invoked exactly once.
func (inv *Invoker) Redeploy(ctx context.Context, onDone func(Result)) *proc.Task[Result] {
	return proc.Go(ctx, inv.run, onDone)
}

func (inv *Invoker) run(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	primary := proc.Run(ctx, specFor(inv.primary))
	inv.logAttempt(inv.primary, primary)
	if primary.Succeeded() || ctx.Err() != nil {
		return Result{Result: primary, timeout: inv.timeout}
	}

	fallback := proc.Run(ctx, specFor(inv.fallback))
	inv.logAttempt(inv.fallback, fallback)
	fallback.Stderr = joinStderr(attemptStderr(primary), fallback.Stderr)
	fallback.Duration += primary.Duration
	return Result{Result: fallback, UsedFallback: true, timeout: inv.timeout}
}

func (inv *Invoker) logAttempt(argv []string, result proc.Result) {
	event := inv.log.Debug()
	if !result.Succeeded() {
		event = inv.log.Warn()
	}
	event.Strs("command", argv).
		Int("exit_code", result.ExitCode).
		Bool("exit_normal", result.ExitNormal).
		AnErr("start_error", result.StartErr).
		Msg("reload attempt finished")
}

func specFor(argv []string) proc.Spec {
	return proc.Spec{Name: argv[0], Args: argv[1:]}
}

// attemptStderr returns what a shell would have printed for the attempt.
func attemptStderr(result proc.Result) string {
	if result.Stderr == "" && result.StartErr != nil {
		return result.StartErr.Error()
	}
	return result.Stderr
}

// joinStderr concatenates attempt output the way `primary || fallback` would in one shell.
func joinStderr(first string, second string) string {
	switch {
	case first == "":
		return second
	case second == "":
		return first
	case strings.HasSuffix(first, "\n"):
		return first + second
	default:
		return first + "\n" + second
	}
}
