// Package proc runs external processes as asynchronous tasks whose completion
// handler is invoked exactly once.
package proc

import (
	"context"
	"sync"
)

// Task is an in-flight asynchronous operation.
// The completion handler registered with Go runs exactly once, before Done is closed.
type Task[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	once   sync.Once
	result T
}

// Go runs fn on its own goroutine and returns immediately.
// onDone may be nil; when set it receives fn's result exactly once.
func Go[T any](ctx context.Context, fn func(context.Context) T, onDone func(T)) *Task[T] {
	taskCtx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(t.done)
		defer cancel()
		result := fn(taskCtx)
		t.finish(result, onDone)
	}()
	return t
}

// finish stores the result and invokes onDone at most once.
func (t *Task[T]) finish(result T, onDone func(T)) {
	t.once.Do(func() {
		t.result = result
		if onDone != nil {
			onDone(result)
		}
	})
}

// Done returns a channel that is closed after the completion handler returns.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task completes and returns its result.
func (t *Task[T]) Wait() T {
	<-t.done
	return t.result
}

// Cancel requests best-effort cancellation. Running processes are killed;
// the completion handler still runs.
func (t *Task[T]) Cancel() {
	t.cancel()
}
