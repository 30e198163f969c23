package main

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/conn-castle/xiaobait9-tools/internal/archive"
	"github.com/conn-castle/xiaobait9-tools/internal/assets"
	"github.com/conn-castle/xiaobait9-tools/internal/config"
	"github.com/conn-castle/xiaobait9-tools/internal/engine"
	"github.com/conn-castle/xiaobait9-tools/internal/keylock"
	"github.com/conn-castle/xiaobait9-tools/internal/logging"
	"github.com/conn-castle/xiaobait9-tools/internal/metrics"
	"github.com/conn-castle/xiaobait9-tools/internal/redeploy"
	"github.com/conn-castle/xiaobait9-tools/internal/rimeconfig"
	"github.com/conn-castle/xiaobait9-tools/internal/terminal"
	"github.com/conn-castle/xiaobait9-tools/internal/workflow"
)

var (
	defaultPaths  = func() (config.Paths, error) { return config.DefaultPaths(nil) }
	isInteractive = terminal.IsInteractive
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	verbose    bool
}

// app is the wired toolkit for one CLI invocation.
type app struct {
	cfg        *config.Config
	paths      config.Paths
	log        zerolog.Logger
	logCloser  io.Closer
	metrics    *metrics.Recorder
	patcher    *rimeconfig.Patcher
	controller *workflow.Controller
}

// newApp loads configuration and wires every component.
func newApp(opts rootOptions, stderr io.Writer) (*app, error) {
	paths, err := defaultPaths()
	if err != nil {
		return nil, err
	}
	configPath := opts.configPath
	if configPath == "" {
		configPath = paths.ConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logOpts := logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	var logOut io.Writer = io.Discard
	if opts.verbose {
		logOut = stderr
		logOpts.Level = zerolog.DebugLevel.String()
		logOpts.Console = isInteractive()
	}
	log, closer, err := logging.New(logOut, logOpts)
	if err != nil {
		return nil, err
	}

	timeouts := cfg.Timeouts.Parsed()
	recorder := metrics.New()
	patcher := rimeconfig.NewPatcher(nil)
	controller, err := workflow.New(workflow.Options{
		Resources:    assets.FS(),
		EngineScript: assets.EngineScript,
		ScriptPath:   paths.ScriptPath,
		Installer: archive.New(archive.Options{
			Command: cfg.Commands.Unpack,
			Timeout: timeouts.Install,
			Logger:  log,
		}),
		Patcher: patcher,
		Redeployer: redeploy.New(redeploy.Options{
			Primary:  cfg.Commands.RedeployPrimary,
			Fallback: cfg.Commands.RedeployFallback,
			Timeout:  timeouts.Redeploy,
			Logger:   log,
		}),
		Launcher: engine.New(engine.Options{
			Terminal: cfg.Commands.Terminal,
			Logger:   log,
		}),
		Locks: keylock.New(keylock.Options{
			Dir:     paths.LockDir,
			Timeout: timeouts.Lock,
		}),
		Metrics: recorder,
		Logger:  log,
	})
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &app{
		cfg:        cfg,
		paths:      paths,
		log:        log,
		logCloser:  closer,
		metrics:    recorder,
		patcher:    patcher,
		controller: controller,
	}, nil
}

// close exports metrics and releases the log file.
func (a *app) close() {
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.log.Warn().Err(err).Msg("metrics export failed")
	}
	_ = a.logCloser.Close()
}
