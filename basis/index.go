package basis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/katalvlaran/pairspec/state"
)

// Sentinel errors for basis indexing.
var (
	// ErrAlreadyPresent indicates a duplicate insertion attempt.
	ErrAlreadyPresent = errors.New("basis: state already present")

	// ErrNotFound indicates a lookup of an absent state.
	ErrNotFound = errors.New("basis: state not found")

	// ErrPositionRange indicates a position outside [0, Size).
	ErrPositionRange = errors.New("basis: position out of range")

	// ErrNilState indicates a nil state.State was passed in.
	ErrNilState = errors.New("basis: state is nil")

	// ErrNilIndex indicates a nil *Index receiver or argument.
	ErrNilIndex = errors.New("basis: index is nil")
)

// Index owns an ordered, duplicate-free sequence of basis states and
// the inverse map from state to dense position. Positions are stable:
// pruning via Remove preserves the relative order of survivors.
type Index struct {
	states []state.State
	pos    map[state.State]int
	token  uuid.UUID
}

// New returns an empty Index with a fresh identity token.
func New() *Index {
	return &Index{
		pos:   make(map[state.State]int),
		token: uuid.New(),
	}
}

// FromStates builds an Index from states in the given order.
// Duplicates fail with ErrAlreadyPresent and nothing is retained.
func FromStates(states ...state.State) (*Index, error) {
	ix := New()
	for _, s := range states {
		if _, err := ix.Add(s); err != nil {
			return nil, err
		}
	}
	return ix, nil
}

// Add appends s and returns its dense position. Each successful Add is
// a membership change and refreshes the identity token.
func (ix *Index) Add(s state.State) (int, error) {
	if s == nil {
		return 0, ErrNilState
	}
	if at, dup := ix.pos[s]; dup {
		return at, fmt.Errorf("basis: add %q: %w", s.Label(), ErrAlreadyPresent)
	}
	at := len(ix.states)
	ix.states = append(ix.states, s)
	ix.pos[s] = at
	ix.token = uuid.New()
	return at, nil
}

// Lookup returns the dense position of s, or ErrNotFound.
func (ix *Index) Lookup(s state.State) (int, error) {
	if s == nil {
		return 0, ErrNilState
	}
	at, ok := ix.pos[s]
	if !ok {
		return 0, fmt.Errorf("basis: lookup %q: %w", s.Label(), ErrNotFound)
	}
	return at, nil
}

// Contains reports whether s is a member.
func (ix *Index) Contains(s state.State) bool {
	_, ok := ix.pos[s]
	return ok
}

// At returns the state at position i.
func (ix *Index) At(i int) (state.State, error) {
	if i < 0 || i >= len(ix.states) {
		return nil, fmt.Errorf("basis: at %d of %d: %w", i, len(ix.states), ErrPositionRange)
	}
	return ix.states[i], nil
}

// Size returns the number of states.
func (ix *Index) Size() int { return len(ix.states) }

// Token returns the identity token of the current membership. Any
// membership change (Add, Remove, Retain) yields a different token.
func (ix *Index) Token() uuid.UUID { return ix.token }

// States returns a copy of the ordered state sequence.
func (ix *Index) States() []state.State {
	out := make([]state.State, len(ix.states))
	copy(out, ix.states)
	return out
}

// Remove returns a new compacted Index without the given positions,
// preserving the relative order of survivors. The receiver is not
// mutated. Duplicate positions are tolerated; out-of-range positions
// fail with ErrPositionRange.
func (ix *Index) Remove(positions []int) (*Index, error) {
	drop := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		if p < 0 || p >= len(ix.states) {
			return nil, fmt.Errorf("basis: remove %d of %d: %w", p, len(ix.states), ErrPositionRange)
		}
		drop[p] = struct{}{}
	}
	return ix.Retain(func(i int, _ state.State) bool {
		_, gone := drop[i]
		return !gone
	}), nil
}

// Retain returns a new compacted Index holding exactly the states for
// which keep returns true, in their original relative order. The
// receiver is not mutated.
func (ix *Index) Retain(keep func(position int, s state.State) bool) *Index {
	out := New()
	for i, s := range ix.states {
		if keep(i, s) {
			out.pos[s] = len(out.states)
			out.states = append(out.states, s)
		}
	}
	return out
}

// Positions returns the sorted positions of all states satisfying the
// predicate.
func (ix *Index) Positions(pred func(s state.State) bool) []int {
	var out []int
	for i, s := range ix.states {
		if pred(s) {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}
