package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/eigen"
	"github.com/katalvlaran/pairspec/selection"
)

// DefaultWorkers bounds the pool when no worker count is configured.
const DefaultWorkers = 4

// Outcome is the result of one sweep point. Exactly one of Spectrum
// and Err is set.
type Outcome struct {
	Point    selection.Params
	Spectrum *eigen.Spectrum
	Err      error
}

// Runner walks a list of parameter points over a bounded worker pool,
// memoizing through a Cache. One Runner may serve many Run calls.
type Runner struct {
	workers int
	cache   *Cache
	log     *slog.Logger
	err     error
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers sets the pool size. Counts below one are rejected at
// NewRunner time.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n < 1 {
			r.err = fmt.Errorf("sweep: %d workers: %w", n, ErrBadWorkers)
			return
		}
		r.workers = n
	}
}

// WithCache shares an existing cache across runners.
func WithCache(c *Cache) RunnerOption {
	return func(r *Runner) { r.cache = c }
}

// WithLogger enables structured progress logging.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// NewRunner builds a runner with DefaultWorkers and a private cache
// unless options say otherwise.
func NewRunner(opts ...RunnerOption) (*Runner, error) {
	r := &Runner{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(r)
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.cache == nil {
		r.cache = NewCache()
	}
	return r, nil
}

// Run evaluates every point and returns one Outcome per point in input
// order. A failing point records its error in its Outcome and the rest
// of the sweep proceeds; cancelling ctx marks all unstarted points
// with the context error.
func (r *Runner) Run(ctx context.Context, ix *basis.Index, points []selection.Params, fn ComputeFunc) ([]Outcome, error) {
	if ix == nil {
		return nil, ErrNilIndex
	}
	if fn == nil {
		return nil, ErrNilCompute
	}
	outcomes := make([]Outcome, len(points))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = r.runPoint(ctx, ix, points[idx], fn)
			}
		}()
	}

feed:
	for idx := range points {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			// Points not yet handed to a worker; fed ones settle their
			// own outcome inside runPoint.
			for rest := idx; rest < len(points); rest++ {
				outcomes[rest] = Outcome{Point: points[rest], Err: ctx.Err()}
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return outcomes, nil
}

// runPoint evaluates a single point through the cache.
func (r *Runner) runPoint(ctx context.Context, ix *basis.Index, at selection.Params, fn ComputeFunc) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Point: at, Err: err}
	}
	sp, err := r.cache.GetOrCompute(ix, at, fn)
	if err != nil {
		if r.log != nil {
			r.log.Warn("sweep point failed", "point", at, "error", err)
		}
		return Outcome{Point: at, Err: err}
	}
	if r.log != nil {
		r.log.Debug("sweep point done", "point", at, "levels", sp.Len())
	}
	return Outcome{Point: at, Spectrum: sp}
}
