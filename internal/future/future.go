// Package future provides the asynchronous value handle used by the graph
// engine. A Future completes exactly once, with either a value or an error,
// and exposes a channel so completion can be composed with select.
package future

import (
	"context"
	"sync"
)

// Future is a write-once container for an eventual value or error.
// It is safe for concurrent use; all readers observe the same outcome.
type Future struct {
	done  chan struct{}
	once  sync.Once
	value any
	err   error
}

// CompleteFunc settles the Future it was created with. Calls after the
// first are ignored.
type CompleteFunc func(value any, err error)

// New returns an unsettled Future together with the function that settles it.
func New() (*Future, CompleteFunc) {
	f := &Future{done: make(chan struct{})}
	return f, f.complete
}

// Completed returns a Future already settled with the given value.
func Completed(value any) *Future {
	f, complete := New()
	complete(value, nil)
	return f
}

// Failed returns a Future already settled with the given error.
func Failed(err error) *Future {
	f, complete := New()
	complete(nil, err)
	return f
}

func (f *Future) complete(value any, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Done returns a channel that is closed when the Future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the Future settles and returns its outcome.
func (f *Future) Result() (any, error) {
	<-f.done
	return f.value, f.err
}

// Wait blocks until the Future settles or the context is cancelled.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
