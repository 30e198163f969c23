// Package engine starts the Rime engine installer in a detached terminal window.
package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/conn-castle/xiaobait9-tools/internal/fsutil"
	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

const scriptPerm = 0o755

var (
	// ErrEngineLaunch reports that the terminal could not be started.
	ErrEngineLaunch = errors.New("engine launch failed")
	// DefaultTerminal runs the script in a new deepin-terminal window.
	DefaultTerminal = []string{"deepin-terminal", "-e"}
)

var execCommand = exec.Command

// Options controls how the installer is launched.
type Options struct {
	// Terminal is the emulator argv; the script path is appended.
	Terminal []string
	Logger   zerolog.Logger
}

// Launcher starts the engine installer and does not wait for it.
type Launcher struct {
	terminal []string
	log      zerolog.Logger
}

// New returns a Launcher with defaults applied.
func New(opts Options) *Launcher {
	terminal := opts.Terminal
	if len(terminal) == 0 {
		terminal = DefaultTerminal
	}
	return &Launcher{
		terminal: terminal,
		log:      opts.Logger.With().Str("component", "engine").Logger(),
	}
}

// Terminal returns the terminal program name.
func (l *Launcher) Terminal() string {
	return l.terminal[0]
}

// Args returns the full argv used to run scriptPath.
func (l *Launcher) Args(scriptPath string) []string {
	argv := make([]string, 0, len(l.terminal)+1)
	argv = append(argv, l.terminal...)
	return append(argv, scriptPath)
}

// Launch starts the terminal in its own session and returns without waiting
// for the installer. The child is reaped in the background once it exits.
// Only a start failure is reported.
func (l *Launcher) Launch(scriptPath string) error {
	argv := l.Args(scriptPath)
	cmd := execCommand(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: "+messages.EngineLaunchFailedFmt, ErrEngineLaunch, argv[0], err)
	}
	pid := cmd.Process.Pid
	l.log.Info().Strs("command", argv).Int("pid", pid).Msg("engine installer started")
	go func() {
		err := cmd.Wait()
		l.log.Debug().Err(err).Int("pid", pid).Msg("engine terminal exited")
	}()
	return nil
}

// WriteScript materializes the bundled script name from fsys at path as an executable file.
func WriteScript(fsys fs.FS, name string, path string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: "+messages.EngineScriptReadFmt, ErrEngineLaunch, name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: "+messages.EngineScriptWriteFmt, ErrEngineLaunch, path, err)
	}
	if err := fsutil.WriteFileAtomic(path, data, scriptPerm); err != nil {
		return fmt.Errorf("%w: "+messages.EngineScriptWriteFmt, ErrEngineLaunch, path, err)
	}
	return nil
}
