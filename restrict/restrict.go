package restrict

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/selection"
	"github.com/katalvlaran/pairspec/state"
)

// Sentinel errors for restriction.
var (
	// ErrBadWindow indicates an energy window with min > max.
	ErrBadWindow = errors.New("restrict: invalid energy window")

	// ErrBadRange indicates a quantum-number range with min > max.
	ErrBadRange = errors.New("restrict: invalid quantum-number range")

	// ErrBadHops indicates a negative reachability hop bound.
	ErrBadHops = errors.New("restrict: invalid hop bound")

	// ErrEmptyCore indicates a reachability filter without core states.
	ErrEmptyCore = errors.New("restrict: empty core set")

	// ErrNilProvider indicates an energy window without a provider.
	ErrNilProvider = errors.New("restrict: energy provider is nil")

	// ErrNilEvaluator indicates a reachability filter without an evaluator.
	ErrNilEvaluator = errors.New("restrict: evaluator is nil")
)

// filter is one pruning pass over an Index.
type filter interface {
	apply(ix *basis.Index) (*basis.Index, error)
}

// Option appends one filter to a Restrict call.
type Option func(*options)

type options struct {
	filters []filter
	err     error
}

// Restrict applies the given filters in order and returns the pruned
// Index. Surviving states keep their relative order; passes that drop
// nothing return their input unchanged, so reapplying the same
// restriction is a no-op (identity token included). With no options
// the input is returned as-is.
func Restrict(ix *basis.Index, opts ...Option) (*basis.Index, error) {
	if ix == nil {
		return nil, basis.ErrNilIndex
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	cur := ix
	for _, f := range o.filters {
		next, err := f.apply(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// retainIf compacts ix to the states satisfying keep, returning ix
// itself when nothing is dropped.
func retainIf(ix *basis.Index, keep func(i int, s state.State) (bool, error)) (*basis.Index, error) {
	kept := make([]bool, ix.Size())
	dropped := false
	for i := 0; i < ix.Size(); i++ {
		s, err := ix.At(i)
		if err != nil {
			return nil, err
		}
		ok, err := keep(i, s)
		if err != nil {
			return nil, err
		}
		kept[i] = ok
		if !ok {
			dropped = true
		}
	}
	if !dropped {
		return ix, nil
	}
	return ix.Retain(func(i int, _ state.State) bool { return kept[i] }), nil
}

// ---------------------------------------------------------------- energy

type energyFilter struct {
	min, max float64
	provider selection.EnergyProvider
	at       selection.Params
}

// WithEnergyWindow drops states whose unperturbed energy lies outside
// [min, max] at the given parameter point.
func WithEnergyWindow(min, max float64, p selection.EnergyProvider, at selection.Params) Option {
	return func(o *options) {
		if min > max {
			o.err = fmt.Errorf("restrict: window [%g, %g]: %w", min, max, ErrBadWindow)
			return
		}
		if p == nil {
			o.err = ErrNilProvider
			return
		}
		o.filters = append(o.filters, energyFilter{min: min, max: max, provider: p, at: at})
	}
}

func (f energyFilter) apply(ix *basis.Index) (*basis.Index, error) {
	return retainIf(ix, func(_ int, s state.State) (bool, error) {
		e, err := f.provider.Energy(s, f.at)
		if err != nil {
			return false, fmt.Errorf("restrict: energy of %q: %w: %w",
				s.Label(), selection.ErrProvider, err)
		}
		return e >= f.min && e <= f.max, nil
	})
}

// ---------------------------------------------------- quantum-number ranges

// intRange keeps states whose every component key has get(key) within
// [min, max].
type intRange struct {
	name     string
	min, max int
	get      func(state.StateKey) int
}

func (f intRange) apply(ix *basis.Index) (*basis.Index, error) {
	return retainIf(ix, func(_ int, s state.State) (bool, error) {
		for _, k := range s.Keys() {
			if v := f.get(k); v < f.min || v > f.max {
				return false, nil
			}
		}
		return true, nil
	})
}

type floatRange struct {
	name     string
	min, max float64
	get      func(state.StateKey) float64
}

func (f floatRange) apply(ix *basis.Index) (*basis.Index, error) {
	return retainIf(ix, func(_ int, s state.State) (bool, error) {
		for _, k := range s.Keys() {
			if v := f.get(k); v < f.min || v > f.max {
				return false, nil
			}
		}
		return true, nil
	})
}

func intRangeOption(name string, min, max int, get func(state.StateKey) int) Option {
	return func(o *options) {
		if min > max {
			o.err = fmt.Errorf("restrict: %s range [%d, %d]: %w", name, min, max, ErrBadRange)
			return
		}
		o.filters = append(o.filters, intRange{name: name, min: min, max: max, get: get})
	}
}

func floatRangeOption(name string, min, max float64, get func(state.StateKey) float64) Option {
	return func(o *options) {
		if min > max {
			o.err = fmt.Errorf("restrict: %s range [%g, %g]: %w", name, min, max, ErrBadRange)
			return
		}
		o.filters = append(o.filters, floatRange{name: name, min: min, max: max, get: get})
	}
}

// WithNRange keeps states with every principal number in [min, max].
func WithNRange(min, max int) Option {
	return intRangeOption("n", min, max, func(k state.StateKey) int { return k.N })
}

// WithLRange keeps states with every orbital number in [min, max].
func WithLRange(min, max int) Option {
	return intRangeOption("l", min, max, func(k state.StateKey) int { return k.L })
}

// WithJRange keeps states with every total angular momentum in [min, max].
func WithJRange(min, max float64) Option {
	return floatRangeOption("j", min, max, func(k state.StateKey) float64 { return k.J })
}

// WithMRange keeps states with every projection in [min, max].
func WithMRange(min, max float64) Option {
	return floatRangeOption("m", min, max, func(k state.StateKey) float64 { return k.M })
}

// ------------------------------------------------------------ reachability

type reachabilityFilter struct {
	core []state.State
	hops int
	ev   *selection.Evaluator
}

// WithReachability keeps only states reachable from the core set
// within hops coupling steps under the evaluator's selection rules.
// Core states are identified by value, so the filter is stable across
// compaction; core states absent from the index are ignored.
func WithReachability(core []state.State, hops int, ev *selection.Evaluator) Option {
	return func(o *options) {
		if hops < 0 {
			o.err = fmt.Errorf("restrict: %d hops: %w", hops, ErrBadHops)
			return
		}
		if len(core) == 0 {
			o.err = ErrEmptyCore
			return
		}
		if ev == nil {
			o.err = ErrNilEvaluator
			return
		}
		o.filters = append(o.filters, reachabilityFilter{
			core: append([]state.State(nil), core...),
			hops: hops,
			ev:   ev,
		})
	}
}

// queueItem pairs a basis position with its coupling depth.
type queueItem struct {
	pos   int
	depth int
}

// reachWalker holds the mutable breadth-first state of one pass.
type reachWalker struct {
	ix      *basis.Index
	ev      *selection.Evaluator
	cand    *selection.Candidates
	maxHops int
	queue   []queueItem
	visited []bool
}

func (f reachabilityFilter) apply(ix *basis.Index) (*basis.Index, error) {
	cand, err := f.ev.NewCandidates(ix)
	if err != nil {
		return nil, err
	}
	w := &reachWalker{
		ix:      ix,
		ev:      f.ev,
		cand:    cand,
		maxHops: f.hops,
		queue:   make([]queueItem, 0, ix.Size()),
		visited: make([]bool, ix.Size()),
	}
	// Seed: every core state present in the index, depth 0.
	for _, s := range f.core {
		if pos, lerr := ix.Lookup(s); lerr == nil {
			w.enqueue(pos, 0)
		}
	}
	if err = w.loop(); err != nil {
		return nil, err
	}
	return retainIf(ix, func(i int, _ state.State) (bool, error) {
		return w.visited[i], nil
	})
}

func (w *reachWalker) enqueue(pos, depth int) {
	if w.visited[pos] {
		return
	}
	w.visited[pos] = true
	w.queue = append(w.queue, queueItem{pos: pos, depth: depth})
}

// loop processes the queue until empty, expanding each position into
// its selection-allowed partners one hop deeper.
func (w *reachWalker) loop() error {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		if item.depth >= w.maxHops {
			continue
		}
		a, err := w.ix.At(item.pos)
		if err != nil {
			return err
		}
		partners, err := w.cand.For(item.pos)
		if err != nil {
			return err
		}
		for _, j := range partners {
			if w.visited[j] {
				continue
			}
			b, err := w.ix.At(j)
			if err != nil {
				return err
			}
			if w.ev.AllowedAny(a, b) {
				w.enqueue(j, item.depth+1)
			}
		}
	}
	return nil
}
