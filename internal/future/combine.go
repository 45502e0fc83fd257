package future

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Submitter dispatches a unit of work for asynchronous execution. It is
// satisfied by executor.Pool and executor.Sync.
type Submitter interface {
	Submit(task func())
}

// All returns a Future that settles once every constituent has settled,
// carrying the constituent values in argument order. The join is fail-fast:
// as soon as any constituent fails, the returned Future settles with that
// error and the stragglers are abandoned.
func All(futures ...*Future) *Future {
	out, complete := New()

	go func() {
		g, ctx := errgroup.WithContext(context.Background())
		for _, f := range futures {
			g.Go(func() error {
				select {
				case <-f.Done():
					_, err := f.Result()
					return err
				case <-ctx.Done():
					return ctx.Err()
				}
			})
		}
		if err := g.Wait(); err != nil {
			complete(nil, err)
			return
		}

		values := make([]any, len(futures))
		for i, f := range futures {
			values[i], _ = f.Result()
		}
		complete(values, nil)
	}()

	return out
}

// ThenAsync composes a continuation onto f. Once f settles successfully,
// fn is submitted to the executor; the returned Future tracks the Future
// fn produces. If f settles with an error, the error propagates and fn is
// never invoked.
func ThenAsync(f *Future, exec Submitter, fn func(value any) *Future) *Future {
	out, complete := New()

	go func() {
		v, err := f.Result()
		if err != nil {
			complete(nil, err)
			return
		}
		exec.Submit(func() {
			inner := fn(v)
			go func() {
				complete(inner.Result())
			}()
		})
	}()

	return out
}

// Recover maps the error branch of f to the given fallback value. A
// successful f passes through unchanged.
func Recover(f *Future, fallback any) *Future {
	out, complete := New()

	go func() {
		v, err := f.Result()
		if err != nil {
			complete(fallback, nil)
			return
		}
		complete(v, nil)
	}()

	return out
}
