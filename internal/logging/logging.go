// Package logging builds the zerolog logger used by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

// DefaultLevel keeps normal runs quiet; user-facing output does not go through the logger.
const DefaultLevel = zerolog.WarnLevel

// Options controls logger construction.
type Options struct {
	// Level is a zerolog level name; empty uses DefaultLevel.
	Level string
	// File, when set, receives JSON logs in addition to Out.
	File string
	// Console renders human-readable lines on Out instead of JSON.
	Console bool
}

var openFile = func(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// ParseLevel converts a level name into a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf(messages.LoggingInvalidLevelFmt, name, err)
	}
	return level, nil
}

// New returns a logger writing to out and, when configured, to a log file.
// The returned closer releases the log file and is never nil.
func New(out io.Writer, opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var primary io.Writer = out
	if opts.Console {
		primary = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	var closer io.Closer = nopCloser{}
	writer := primary
	if opts.File != "" {
		file, err := openFile(opts.File)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf(messages.LoggingOpenFileFmt, opts.File, err)
		}
		closer = file
		writer = zerolog.MultiLevelWriter(primary, file)
	}

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
