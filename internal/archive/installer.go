// Package archive unpacks scheme archives into the Rime user directory with
// an external decompression utility.
package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
	"github.com/conn-castle/xiaobait9-tools/internal/proc"
)

const (
	// DefaultCommand is the decompression utility.
	DefaultCommand = "tar"
	// DefaultTimeout bounds a single unpack run.
	DefaultTimeout = 2 * time.Minute

	unpackFlag = "-xzf"
	targetFlag = "-C"
	dirPerm    = 0o755
)

var (
	// ErrDirectoryCreate reports that the target directory could not be created.
	ErrDirectoryCreate = errors.New("directory create failed")
	// ErrInstallFailure reports that the unpack process did not exit cleanly.
	ErrInstallFailure = errors.New("install failed")
)

var installFormats = proc.Formats{
	Failed:   messages.InstallFailedFmt,
	TimedOut: messages.InstallTimedOutFmt,
	Canceled: messages.InstallCanceledFmt,
}

// Archive is a temporary archive file owned by the install.
type Archive interface {
	Path() string
	Close() error
}

// Options controls installer behavior.
type Options struct {
	// Command is the decompression utility; empty uses DefaultCommand.
	Command string
	// Timeout bounds the unpack process; zero uses DefaultTimeout.
	Timeout time.Duration
	System  System
	Logger  zerolog.Logger
}

// Outcome reports how one unpack run finished.
type Outcome struct {
	proc.Result
	// CleanupErr is set when the temporary archive could not be removed.
	CleanupErr error
	timeout    time.Duration
}

// Err returns an error of kind ErrInstallFailure unless the unpack succeeded.
func (o Outcome) Err() error {
	if o.Succeeded() {
		return nil
	}
	return &proc.ProcessError{
		Kind:    ErrInstallFailure,
		Result:  o.Result,
		Timeout: o.timeout,
		Formats: installFormats,
	}
}

// Installer ensures target directories and unpacks archives into them.
type Installer struct {
	command string
	timeout time.Duration
	sys     System
	log     zerolog.Logger
}

// New returns an Installer with defaults applied.
func New(opts Options) *Installer {
	inst := &Installer{
		command: strings.TrimSpace(opts.Command),
		timeout: opts.Timeout,
		sys:     opts.System,
		log:     opts.Logger.With().Str("component", "archive").Logger(),
	}
	if inst.command == "" {
		inst.command = DefaultCommand
	}
	if inst.timeout <= 0 {
		inst.timeout = DefaultTimeout
	}
	if inst.sys == nil {
		inst.sys = RealSystem{}
	}
	return inst
}

// EnsureTargetDirectory creates path and any missing parents.
// An existing directory is not an error.
func (i *Installer) EnsureTargetDirectory(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: %s", ErrDirectoryCreate, messages.DirectoryRequired)
	}
	if info, err := i.sys.Stat(path); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: "+messages.DirectoryNotDirFmt, ErrDirectoryCreate, path)
		}
		return nil
	}
	if err := i.sys.MkdirAll(path, dirPerm); err != nil {
		return fmt.Errorf("%w: "+messages.DirectoryCreateFmt, ErrDirectoryCreate, path, err)
	}
	i.log.Debug().Str("target_dir", path).Msg("created target directory")
	return nil
}

// Args returns the argument vector passed to the decompression utility.
func Args(archivePath string, targetDir string) []string {
	return []string{unpackFlag, archivePath, targetFlag, targetDir}
}

// Install unpacks archive into targetDir without blocking the caller.
// onDone may be nil; it is invoked exactly once, after the archive has been
// released, on success, failure, timeout or cancellation alike.
func (i *Installer) Install(ctx context.Context, archive Archive, targetDir string, onDone func(Outcome)) *proc.Task[Outcome] {
	return proc.Go(ctx, func(ctx context.Context) Outcome {
		return i.install(ctx, archive, targetDir)
	}, onDone)
}

func (i *Installer) install(ctx context.Context, archive Archive, targetDir string) Outcome {
	if archive == nil {
		return Outcome{Result: proc.Result{ExitCode: -1, StartErr: errors.New(messages.ArchiveRequired)}, timeout: i.timeout}
	}
	defer func() {
		// Close is idempotent; this only matters if Run panics.
		_ = archive.Close()
	}()

	spec := proc.Spec{
		Name:    i.command,
		Args:    Args(archive.Path(), targetDir),
		Timeout: i.timeout,
	}
	i.log.Debug().Str("command", spec.Name).Strs("args", spec.Args).Msg("starting unpack")
	result := proc.Run(ctx, spec)

	outcome := Outcome{Result: result, timeout: i.timeout}
	if err := archive.Close(); err != nil {
		outcome.CleanupErr = err
		i.log.Warn().Err(err).Str("path", archive.Path()).Msg("failed to remove temporary archive")
	}

	event := i.log.Debug()
	if !result.Succeeded() {
		event = i.log.Warn()
	}
	event.Int("exit_code", result.ExitCode).
		Bool("exit_normal", result.ExitNormal).
		Dur("duration", result.Duration).
		Str("target_dir", targetDir).
		Msg("unpack finished")
	return outcome
}
