// Package workflow sequences the scheme install, redeploy and engine install
// actions and records their outcomes.
package workflow

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/conn-castle/xiaobait9-tools/internal/archive"
	"github.com/conn-castle/xiaobait9-tools/internal/engine"
	"github.com/conn-castle/xiaobait9-tools/internal/keylock"
	"github.com/conn-castle/xiaobait9-tools/internal/messages"
	"github.com/conn-castle/xiaobait9-tools/internal/metrics"
	"github.com/conn-castle/xiaobait9-tools/internal/proc"
	"github.com/conn-castle/xiaobait9-tools/internal/redeploy"
	"github.com/conn-castle/xiaobait9-tools/internal/resource"
	"github.com/conn-castle/xiaobait9-tools/internal/rimeconfig"
)

// Action labels used in logs and metrics.
const (
	ActionInstallSchema = "install_schema"
	ActionRedeploy      = "redeploy"
	ActionInstallEngine = "install_engine"
)

var writeScript = engine.WriteScript

// ArchiveInstaller prepares the target directory and unpacks archives into it.
type ArchiveInstaller interface {
	EnsureTargetDirectory(path string) error
	Install(ctx context.Context, a archive.Archive, targetDir string, onDone func(archive.Outcome)) *proc.Task[archive.Outcome]
}

// ConfigPatcher activates a schema in default.custom.yaml.
type ConfigPatcher interface {
	EnsureSchemaActivated(path string, schemaID string) (rimeconfig.Result, error)
}

// Redeployer reloads the input method.
type Redeployer interface {
	Redeploy(ctx context.Context, onDone func(redeploy.Result)) *proc.Task[redeploy.Result]
}

// EngineLauncher starts the engine installer script.
type EngineLauncher interface {
	Launch(scriptPath string) error
}

// Locker grants exclusive access per target directory.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// Options wires the controller's collaborators.
type Options struct {
	// Resources holds the bundled archive and engine script.
	Resources fs.FS
	// TempDir is where archives are extracted; empty uses os.TempDir().
	TempDir string
	// EngineScript names the engine installer inside Resources.
	EngineScript string
	// ScriptPath is where the engine installer is written before launch.
	ScriptPath string

	Installer  ArchiveInstaller
	Patcher    ConfigPatcher
	Redeployer Redeployer
	Launcher   EngineLauncher
	Locks      Locker
	Metrics    *metrics.Recorder
	Logger     zerolog.Logger
}

// Controller runs user actions. Scheme installs into the same directory never overlap.
type Controller struct {
	resources    fs.FS
	tempDir      string
	engineScript string
	scriptPath   string
	installer    ArchiveInstaller
	patcher      ConfigPatcher
	redeployer   Redeployer
	launcher     EngineLauncher
	locks        Locker
	metrics      *metrics.Recorder
	log          zerolog.Logger
}

// New validates opts and returns a Controller.
func New(opts Options) (*Controller, error) {
	switch {
	case opts.Resources == nil:
		return nil, errors.New(messages.WorkflowResourcesRequired)
	case opts.Installer == nil:
		return nil, errors.New(messages.WorkflowInstallerRequired)
	case opts.Patcher == nil:
		return nil, errors.New(messages.WorkflowPatcherRequired)
	case opts.Redeployer == nil:
		return nil, errors.New(messages.WorkflowRedeployerRequired)
	case opts.Launcher == nil:
		return nil, errors.New(messages.WorkflowLauncherRequired)
	case opts.Locks == nil:
		return nil, errors.New(messages.WorkflowLocksRequired)
	}
	return &Controller{
		resources:    opts.Resources,
		tempDir:      opts.TempDir,
		engineScript: opts.EngineScript,
		scriptPath:   opts.ScriptPath,
		installer:    opts.Installer,
		patcher:      opts.Patcher,
		redeployer:   opts.Redeployer,
		launcher:     opts.Launcher,
		locks:        opts.Locks,
		metrics:      opts.Metrics,
		log:          opts.Logger.With().Str("component", "workflow").Logger(),
	}, nil
}

// InstallSchema unpacks the bundled scheme into req.TargetDir and activates it.
// It returns immediately; onDone, if set, receives the Report exactly once.
// The temporary archive is removed on every path.
func (c *Controller) InstallSchema(ctx context.Context, req InstallRequest, onDone func(Report)) *proc.Task[Report] {
	return proc.Go(ctx, func(ctx context.Context) Report {
		return c.installSchema(ctx, req)
	}, onDone)
}

func (c *Controller) installSchema(ctx context.Context, req InstallRequest) Report {
	start := time.Now()
	log := c.log.With().
		Str("request_id", req.ID).
		Str("target_dir", req.TargetDir).
		Logger()

	status, err := c.runInstall(ctx, req, log)
	report := Report{Request: req, Status: status, Err: err, Duration: time.Since(start)}
	c.record(log, ActionInstallSchema, err, report.Duration)
	if err == nil {
		log.Info().Str("status", status.String()).Msg("scheme installed")
	}
	return report
}

func (c *Controller) runInstall(ctx context.Context, req InstallRequest, log zerolog.Logger) (rimeconfig.Result, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	key, err := keylock.Key(req.TargetDir)
	if err != nil {
		return 0, err
	}
	release, err := c.locks.Acquire(ctx, key)
	if err != nil {
		return 0, err
	}
	defer release()
	log.Debug().Msg("acquired target lock")

	if err := c.installer.EnsureTargetDirectory(req.TargetDir); err != nil {
		return 0, err
	}

	handle, err := resource.Extract(c.resources, req.ResourceName, resource.Options{TempDir: c.tempDir})
	if err != nil {
		return 0, err
	}
	defer func() { _ = handle.Close() }()
	log.Debug().Str("archive", handle.Path()).Int64("bytes", handle.Size()).Msg("extracted archive")

	outcome := c.installer.Install(ctx, handle, req.TargetDir, nil).Wait()
	if err := outcome.Err(); err != nil {
		return 0, err
	}

	return c.patcher.EnsureSchemaActivated(rimeconfig.Path(req.TargetDir), req.SchemaID)
}

// Redeploy reloads the input method. onDone, if set, receives the result exactly once.
func (c *Controller) Redeploy(ctx context.Context, onDone func(redeploy.Result)) *proc.Task[redeploy.Result] {
	start := time.Now()
	return c.redeployer.Redeploy(ctx, func(result redeploy.Result) {
		c.record(c.log, ActionRedeploy, result.Err(), time.Since(start))
		if onDone != nil {
			onDone(result)
		}
	})
}

// InstallEngine writes the bundled installer script and opens it in a terminal.
// It returns once the terminal has started.
func (c *Controller) InstallEngine() error {
	start := time.Now()
	err := c.launchEngine()
	c.record(c.log, ActionInstallEngine, err, time.Since(start))
	return err
}

func (c *Controller) launchEngine() error {
	if err := writeScript(c.resources, c.engineScript, c.scriptPath); err != nil {
		return err
	}
	return c.launcher.Launch(c.scriptPath)
}

func (c *Controller) record(log zerolog.Logger, action string, err error, d time.Duration) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = FailureKind(err)
		log.Warn().Err(err).Str("action", action).Str("kind", outcome).Dur("duration", d).Msg("action failed")
	}
	c.metrics.Observe(action, outcome, d)
}
