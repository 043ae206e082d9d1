// Package gather runs independent lookups concurrently without letting one
// failure sink the others.
package gather

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Result is the outcome of one branch. Exactly one of Value or Err is
// meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Settle runs every fn concurrently and waits for all of them. Results are
// returned in input order. A branch that panics reports the panic as its
// error.
func Settle[T any](ctx context.Context, fns ...func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(fns))

	var wg conc.WaitGroup
	for i, fn := range fns {
		wg.Go(func() {
			var (
				v   T
				err error
			)
			if r := panics.Try(func() { v, err = fn(ctx) }); r != nil {
				err = fmt.Errorf("branch %d panicked: %w", i, r.AsError())
			}
			results[i] = Result[T]{Value: v, Err: err}
		})
	}
	wg.Wait()

	return results
}

// Values returns the successful values in input order.
func Values[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Value)
		}
	}
	return out
}
