// Package resource materializes bundled read-only resources into scoped
// temporary files that external processes can open by path.
package resource

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

// copyBufferSize bounds peak memory while streaming regardless of resource size.
const copyBufferSize = 32 * 1024

// DefaultPattern is the temp file name pattern used when Options.Pattern is empty.
const DefaultPattern = "xbt-archive-*.tar.gz"

var (
	// ErrResourceRead reports a missing or unreadable bundled resource.
	ErrResourceRead = errors.New("resource read failed")
	// ErrTempFileCreate reports that the temporary file could not be created.
	ErrTempFileCreate = errors.New("temporary file create failed")
	// ErrTempFileWrite reports a failed or short write to the temporary file.
	ErrTempFileWrite = errors.New("temporary file write failed")
)

// tempFile is the subset of *os.File used while streaming.
type tempFile interface {
	io.Writer
	Name() string
	Sync() error
	Close() error
}

var createTemp = func(dir string, pattern string) (tempFile, error) {
	return os.CreateTemp(dir, pattern)
}

var removeFile = os.Remove

// Options controls where temporary files are created.
type Options struct {
	// TempDir is the directory for the temp file; empty uses os.TempDir().
	TempDir string
	Pattern string
}

// Handle is an exclusively-owned temporary file holding extracted bytes.
// Close removes the file and is safe to call more than once.
type Handle struct {
	mu       sync.Mutex
	path     string
	file     tempFile
	size     int64
	closed   bool
	detached bool
}

// Path returns the filesystem path of the temporary file.
func (h *Handle) Path() string {
	return h.path
}

// Size returns the number of bytes written.
func (h *Handle) Size() int64 {
	return h.size
}

// Close releases the file descriptor and deletes the file unless the handle was detached.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	var errs []error
	if h.file != nil {
		if err := h.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if !h.detached {
		if err := removeFile(h.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Detach transfers ownership of the file to the caller: Close keeps the file on disk.
func (h *Handle) Detach() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detached = true
	return h.path
}

// Extract copies the named resource from fsys into a new temporary file.
// On any failure the partial temporary file is removed before returning.
func Extract(fsys fs.FS, name string, opts Options) (*Handle, error) {
	src, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.ResourceOpenFmt, ErrResourceRead, name, err)
	}
	defer func() { _ = src.Close() }()

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	file, err := createTemp(opts.TempDir, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.TempFileCreateFmt, ErrTempFileCreate, err)
	}
	handle := &Handle{path: file.Name(), file: file}

	written, err := stream(file, src, name, make([]byte, copyBufferSize))
	if err != nil {
		_ = handle.Close()
		return nil, err
	}
	if written == 0 {
		_ = handle.Close()
		return nil, fmt.Errorf("%w: "+messages.ResourceEmptyFmt, ErrTempFileWrite, name)
	}
	if err := file.Sync(); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("%w: "+messages.TempFileSyncFmt, ErrTempFileWrite, handle.path, err)
	}
	handle.size = written
	return handle, nil
}

// stream copies src to dst through buf, classifying read and write failures.
func stream(dst tempFile, src io.Reader, name string, buf []byte) (int64, error) {
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			w, writeErr := dst.Write(buf[:n])
			if w > 0 {
				written += int64(w)
			}
			if writeErr != nil {
				return written, fmt.Errorf("%w: "+messages.TempFileWriteFmt, ErrTempFileWrite, dst.Name(), writeErr)
			}
			if w != n {
				return written, fmt.Errorf("%w: "+messages.TempFileShortWriteFmt, ErrTempFileWrite, dst.Name(), w, n)
			}
		}
		if errors.Is(readErr, io.EOF) {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("%w: "+messages.ResourceReadFmt, ErrResourceRead, name, readErr)
		}
	}
}
