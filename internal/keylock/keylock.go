// Package keylock serializes work per key, inside the process with a
// semaphore and across processes with an advisory file lock.
package keylock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sys/unix"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

// DefaultTimeout bounds how long Acquire waits for another holder.
const DefaultTimeout = 30 * time.Second

// ErrLockTimeout reports that the key stayed held past the wait timeout.
var ErrLockTimeout = errors.New("lock wait timed out")

var flockFn = unix.Flock

var lockPollEvery = 100 * time.Millisecond

// Options controls lock behavior.
type Options struct {
	// Dir holds the per-key lock files; empty disables cross-process locking.
	Dir     string
	Timeout time.Duration
}

// Locker hands out exclusive access per key.
type Locker struct {
	dir     string
	timeout time.Duration

	mu   sync.Mutex
	keys map[string]*entry
}

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// New returns a Locker with defaults applied.
func New(opts Options) *Locker {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Locker{
		dir:     opts.Dir,
		timeout: timeout,
		keys:    make(map[string]*entry),
	}
}

// Key normalizes a directory path into a lock key.
func Key(path string) (string, error) {
	if path == "" {
		return "", errors.New(messages.LockKeyRequired)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// Acquire blocks until key is free, the timeout elapses, or ctx is done.
// The returned release func must be called exactly once.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	if key == "" {
		return nil, errors.New(messages.LockKeyRequired)
	}
	waitCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	e := l.ref(key)
	if err := e.sem.Acquire(waitCtx, 1); err != nil {
		l.unref(key)
		return nil, l.waitErr(ctx, key, err)
	}

	var file *os.File
	if l.dir != "" {
		var err error
		file, err = l.lockFile(waitCtx, key)
		if err != nil {
			e.sem.Release(1)
			l.unref(key)
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, l.waitErr(ctx, key, err)
			}
			return nil, err
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if file != nil {
				_ = flockFn(int(file.Fd()), unix.LOCK_UN)
				_ = file.Close()
			}
			e.sem.Release(1)
			l.unref(key)
		})
	}, nil
}

// waitErr distinguishes our own timeout from the caller giving up.
func (l *Locker) waitErr(ctx context.Context, key string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: "+messages.LockTimeoutFmt, ErrLockTimeout, key, l.timeout)
	}
	return err
}

func (l *Locker) ref(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.keys[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		l.keys[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.keys[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(l.keys, key)
	}
}

// held reports how many callers hold or wait for key.
func (l *Locker) held(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.keys[key]; ok {
		return e.refs
	}
	return 0
}

// Path returns the lock file used for key.
func (l *Locker) Path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(l.dir, hex.EncodeToString(sum[:8])+".lock")
}

// lockFile opens the key's lock file and polls for an exclusive flock.
func (l *Locker) lockFile(ctx context.Context, key string) (*os.File, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf(messages.LockCreateDirFmt, l.dir, err)
	}
	path := l.Path(key)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	ticker := time.NewTicker(lockPollEvery)
	defer ticker.Stop()
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return file, nil
		}
		if errors.Is(err, unix.EINTR) && ctx.Err() == nil {
			continue
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EINTR) {
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockFmt, path, err)
		}
		select {
		case <-ctx.Done():
			_ = file.Close()
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
