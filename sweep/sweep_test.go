package sweep_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/eigen"
	"github.com/katalvlaran/pairspec/hamiltonian"
	"github.com/katalvlaran/pairspec/selection"
	"github.com/katalvlaran/pairspec/state"
	"github.com/katalvlaran/pairspec/sweep"
)

// fixtureIndex builds a small basis whose token the cache tests can
// shift by adding states.
func fixtureIndex(t *testing.T, n int) *basis.Index {
	t.Helper()
	reg := state.NewRegistry()
	require.NoError(t, reg.Register("Rb", state.Bounds{}))
	ix := basis.New()
	for i := 0; i < n; i++ {
		k := state.StateKey{Species: "Rb", N: 20 + i, L: 0, J: 0.5, M: 0.5}
		_, err := ix.Add(state.Single{Key: k})
		require.NoError(t, err)
	}
	return ix
}

// diagCompute diagonalizes diag(at["e"], at["e"]+1) and counts calls.
func diagCompute(calls *atomic.Int64) sweep.ComputeFunc {
	return func(at selection.Params) (*eigen.Spectrum, error) {
		calls.Add(1)
		m, err := hamiltonian.NewMatrix(2)
		if err != nil {
			return nil, err
		}
		if err := m.Set(0, 0, complex(at["e"], 0)); err != nil {
			return nil, err
		}
		if err := m.Set(1, 1, complex(at["e"]+1, 0)); err != nil {
			return nil, err
		}
		return eigen.Solve(m)
	}
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	a := selection.Params{"field": 0.5, "distance": 12, "angle": 0}
	b := selection.Params{"angle": 0, "distance": 12, "field": 0.5}
	assert.Equal(t, sweep.Fingerprint(a), sweep.Fingerprint(b))

	c := selection.Params{"field": 0.5, "distance": 12, "angle": 1e-12}
	assert.NotEqual(t, sweep.Fingerprint(a), sweep.Fingerprint(c),
		"any value change must move the fingerprint")

	// Name/value boundaries must not be confusable.
	d := selection.Params{"ab": 1}
	e := selection.Params{"a": 1, "b": 1}
	assert.NotEqual(t, sweep.Fingerprint(d), sweep.Fingerprint(e))
}

func TestCache_HitAndMiss(t *testing.T) {
	ix := fixtureIndex(t, 2)
	var calls atomic.Int64
	c := sweep.NewCache()
	fn := diagCompute(&calls)

	first, err := c.GetOrCompute(ix, selection.Params{"e": 1}, fn)
	require.NoError(t, err)
	again, err := c.GetOrCompute(ix, selection.Params{"e": 1}, fn)
	require.NoError(t, err)
	assert.Same(t, first, again, "a hit returns the memoized spectrum")
	assert.Equal(t, int64(1), calls.Load())

	_, err = c.GetOrCompute(ix, selection.Params{"e": 2}, fn)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, 2, c.Len())
}

func TestCache_TokenInvalidation(t *testing.T) {
	ix := fixtureIndex(t, 2)
	var calls atomic.Int64
	c := sweep.NewCache()
	fn := diagCompute(&calls)

	_, err := c.GetOrCompute(ix, selection.Params{"e": 1}, fn)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	// Membership change moves the token and must drop every entry.
	_, err = ix.Add(state.Single{Key: state.StateKey{Species: "Rb", N: 90, L: 0, J: 0.5, M: 0.5}})
	require.NoError(t, err)

	_, err = c.GetOrCompute(ix, selection.Params{"e": 1}, fn)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load(), "stale spectrum must be recomputed")
	assert.Equal(t, 1, c.Len(), "old-token entries are gone")
}

func TestCache_ExplicitInvalidate(t *testing.T) {
	ix := fixtureIndex(t, 2)
	var calls atomic.Int64
	c := sweep.NewCache()
	fn := diagCompute(&calls)

	_, err := c.GetOrCompute(ix, selection.Params{"e": 1}, fn)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Invalidate(ix.Token())
	assert.Equal(t, 0, c.Len())

	_, err = c.GetOrCompute(ix, selection.Params{"e": 1}, fn)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestCache_StaleComputeDiscarded(t *testing.T) {
	ixOld := fixtureIndex(t, 2)
	ixNew := fixtureIndex(t, 3)
	var calls atomic.Int64
	c := sweep.NewCache()
	fn := diagCompute(&calls)

	// The in-flight compute for the old basis observes the cache move
	// to a newer basis mid-flight (the lock is released during fn).
	// Its result must be discarded, not inserted over the new entries.
	slow := func(at selection.Params) (*eigen.Spectrum, error) {
		if _, err := c.GetOrCompute(ixNew, selection.Params{"e": 7}, fn); err != nil {
			return nil, err
		}
		return fn(at)
	}
	_, err := c.GetOrCompute(ixOld, selection.Params{"e": 1}, slow)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len(), "only the new-basis entry survives")

	fresh, err := c.GetOrCompute(ixNew, selection.Params{"e": 7}, fn)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load(), "the new-basis point stays a hit")
	vals := fresh.Values()
	assert.InDelta(t, 7.0, vals[0], 1e-9)
}

func TestCache_ComputeErrorNotCached(t *testing.T) {
	ix := fixtureIndex(t, 2)
	boom := errors.New("provider exploded")
	var calls atomic.Int64
	c := sweep.NewCache()
	failing := func(selection.Params) (*eigen.Spectrum, error) {
		calls.Add(1)
		return nil, boom
	}

	_, err := c.GetOrCompute(ix, selection.Params{"e": 1}, failing)
	assert.ErrorIs(t, err, boom)
	_, err = c.GetOrCompute(ix, selection.Params{"e": 1}, failing)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(2), calls.Load(), "failures are retried, never memoized")
	assert.Equal(t, 0, c.Len())
}

func TestCache_StoreReadWriteThrough(t *testing.T) {
	ix := fixtureIndex(t, 2)
	store := sweep.NewMemoryStore()
	var calls atomic.Int64
	fn := diagCompute(&calls)

	warm := sweep.NewCache(sweep.WithStore(store))
	sp, err := warm.GetOrCompute(ix, selection.Params{"e": 3}, fn)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len(), "fresh results are written through")

	// A cold cache over the same store serves the point without
	// recomputing.
	cold := sweep.NewCache(sweep.WithStore(store))
	got, err := cold.GetOrCompute(ix, selection.Params{"e": 3}, fn)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, sp.Values(), got.Values())
}

func TestCache_Violations(t *testing.T) {
	ix := fixtureIndex(t, 1)
	c := sweep.NewCache()

	_, err := c.GetOrCompute(nil, selection.Params{}, diagCompute(new(atomic.Int64)))
	assert.ErrorIs(t, err, sweep.ErrNilIndex)
	_, err = c.GetOrCompute(ix, selection.Params{}, nil)
	assert.ErrorIs(t, err, sweep.ErrNilCompute)
}

func TestRunner_OrderedOutcomes(t *testing.T) {
	ix := fixtureIndex(t, 2)
	var calls atomic.Int64
	// One worker keeps the revisit count deterministic: a wider pool
	// may start two copies of the same point before either caches.
	r, err := sweep.NewRunner(sweep.WithWorkers(1))
	require.NoError(t, err)

	points := []selection.Params{
		{"e": 0}, {"e": 1}, {"e": 2}, {"e": 1}, {"e": 0},
	}
	outcomes, err := r.Run(context.Background(), ix, points, diagCompute(&calls))
	require.NoError(t, err)
	require.Len(t, outcomes, len(points))

	for i, out := range outcomes {
		require.NoError(t, out.Err, "point %d", i)
		require.NotNil(t, out.Spectrum, "point %d", i)
		vals := out.Spectrum.Values()
		assert.InDelta(t, points[i]["e"], vals[0], 1e-9, "outcome %d reflects its own point", i)
	}
	assert.Equal(t, 2, len(points)-int(calls.Load()),
		"the two revisited points are cache hits")
}

func TestRunner_PointErrorDoesNotAbortSweep(t *testing.T) {
	ix := fixtureIndex(t, 2)
	boom := errors.New("point failed")
	var calls atomic.Int64
	good := diagCompute(&calls)
	fn := func(at selection.Params) (*eigen.Spectrum, error) {
		if at["e"] < 0 {
			return nil, boom
		}
		return good(at)
	}

	r, err := sweep.NewRunner(sweep.WithWorkers(2))
	require.NoError(t, err)
	outcomes, err := r.Run(context.Background(), ix,
		[]selection.Params{{"e": 1}, {"e": -1}, {"e": 2}}, fn)
	require.NoError(t, err)

	assert.NoError(t, outcomes[0].Err)
	assert.ErrorIs(t, outcomes[1].Err, boom)
	assert.NoError(t, outcomes[2].Err)
	assert.NotNil(t, outcomes[2].Spectrum, "neighbours of a failing point still run")
}

func TestRunner_ContextCancellation(t *testing.T) {
	ix := fixtureIndex(t, 2)
	ctx, cancel := context.WithCancel(context.Background())

	var once sync.Once
	var calls atomic.Int64
	fn := func(at selection.Params) (*eigen.Spectrum, error) {
		// Cancel after the very first point starts; later points must
		// observe the cancelled context.
		once.Do(cancel)
		return diagCompute(&calls)(at)
	}

	r, err := sweep.NewRunner(sweep.WithWorkers(1))
	require.NoError(t, err)
	points := []selection.Params{{"e": 0}, {"e": 1}, {"e": 2}, {"e": 3}}
	outcomes, err := r.Run(ctx, ix, points, fn)
	require.NoError(t, err)
	require.Len(t, outcomes, len(points))

	assert.NoError(t, outcomes[0].Err, "the in-flight point completes")
	var cancelled int
	for _, out := range outcomes[1:] {
		if errors.Is(out.Err, context.Canceled) {
			cancelled++
		}
	}
	assert.Equal(t, len(points)-1, cancelled)
}

func TestRunner_Violations(t *testing.T) {
	_, err := sweep.NewRunner(sweep.WithWorkers(0))
	assert.ErrorIs(t, err, sweep.ErrBadWorkers)

	r, err := sweep.NewRunner()
	require.NoError(t, err)
	_, err = r.Run(context.Background(), nil, nil, diagCompute(new(atomic.Int64)))
	assert.ErrorIs(t, err, sweep.ErrNilIndex)
	_, err = r.Run(context.Background(), fixtureIndex(t, 1), nil, nil)
	assert.ErrorIs(t, err, sweep.ErrNilCompute)
}
