// Package state: value types and the species registry.
// Label parsing lives in labels.go.
package state

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for state construction.
var (
	// ErrLabelParse indicates a malformed or out-of-range spectroscopic label.
	ErrLabelParse = errors.New("state: invalid label")

	// ErrNilRegistry indicates a nil *Registry was passed to a constructor.
	ErrNilRegistry = errors.New("state: registry is nil")

	// ErrSpeciesKnown indicates a duplicate species registration.
	ErrSpeciesKnown = errors.New("state: species already registered")

	// ErrUnknownSpecies indicates a species tag absent from the registry.
	// Label parsing wraps this together with ErrLabelParse.
	ErrUnknownSpecies = errors.New("state: unknown species")
)

// Species tags an atomic species, e.g. "Rb" or "Cs".
type Species string

// StateKey identifies a basis state of one particle by its quantum
// numbers. It is an immutable value: equality is component-wise and
// keys are usable as map keys.
type StateKey struct {
	// Species is the atomic species tag.
	Species Species

	// Particle is the particle slot (0 or 1) this key is tagged with.
	// Single-particle systems use slot 0 throughout.
	Particle int

	// N is the principal quantum number (n ≥ 1).
	N int

	// L is the orbital angular momentum quantum number (0 ≤ l < n).
	L int

	// J is the total angular momentum, j = l ± 1/2.
	J float64

	// M is the projection of j onto the quantization axis, |m| ≤ j.
	M float64
}

// Compare orders keys component-wise: species, particle, n, l, j, m.
// Returns -1, 0 or +1. The ordering is total, so sorting a key slice
// is deterministic.
func (k StateKey) Compare(o StateKey) int {
	if c := strings.Compare(string(k.Species), string(o.Species)); c != 0 {
		return c
	}
	if k.Particle != o.Particle {
		return sign(k.Particle - o.Particle)
	}
	if k.N != o.N {
		return sign(k.N - o.N)
	}
	if k.L != o.L {
		return sign(k.L - o.L)
	}
	if k.J != o.J {
		return fsign(k.J - o.J)
	}
	if k.M != o.M {
		return fsign(k.M - o.M)
	}
	return 0
}

// WithParticle returns a copy of k tagged with the given particle slot.
func (k StateKey) WithParticle(p int) StateKey {
	k.Particle = p
	return k
}

// Label renders the canonical single-token label for k, including the
// particle prefix when the slot is non-zero. It round-trips through
// ParseKey for any valid key.
func (k StateKey) Label() string {
	var b strings.Builder
	if k.Particle != 0 {
		fmt.Fprintf(&b, "%d_", k.Particle)
	}
	fmt.Fprintf(&b, "%s:%d,%d,%s,%s", k.Species, k.N, k.L, halfString(k.J), halfString(k.M))
	return b.String()
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

func fsign(d float64) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

// halfString renders a half-integer value as "q" or "p/2".
func halfString(v float64) string {
	two := int(v * 2)
	if two%2 == 0 {
		return fmt.Sprintf("%d", two/2)
	}
	return fmt.Sprintf("%d/2", two)
}

// State is the capability interface over the two basis-state
// representations. Both implementations are comparable value types, so
// State values may be used as map keys.
type State interface {
	// Keys returns the component keys: one for Single, two for Pair
	// (particle 0 first).
	Keys() []StateKey

	// Label renders the canonical label for the state.
	Label() string

	// Compare totally orders states: all Single states sort before all
	// Pair states, then component-wise.
	Compare(State) int
}

// Single is the one-particle state representation.
type Single struct {
	Key StateKey
}

// Keys returns the single component key.
func (s Single) Keys() []StateKey { return []StateKey{s.Key} }

// Label renders the canonical single-particle label.
func (s Single) Label() string { return s.Key.Label() }

// Compare orders Single before Pair, then by key.
func (s Single) Compare(o State) int {
	t, ok := o.(Single)
	if !ok {
		return -1
	}
	return s.Key.Compare(t.Key)
}

// Pair is the two-particle state representation. First is tagged with
// particle slot 0, Second with slot 1.
type Pair struct {
	First  StateKey
	Second StateKey
}

// Keys returns both component keys, particle 0 first.
func (p Pair) Keys() []StateKey { return []StateKey{p.First, p.Second} }

// Label renders the canonical two-token label "first;second".
func (p Pair) Label() string { return p.First.Label() + ";" + p.Second.Label() }

// Compare orders Pair after Single, then component-wise.
func (p Pair) Compare(o State) int {
	t, ok := o.(Pair)
	if !ok {
		return 1
	}
	if c := p.First.Compare(t.First); c != 0 {
		return c
	}
	return p.Second.Compare(t.Second)
}

// Swapped returns the particle-exchanged counterpart of p: the two
// component keys trade places and particle tags. Swapping twice is the
// identity.
func (p Pair) Swapped() Pair {
	return Pair{
		First:  p.Second.WithParticle(0),
		Second: p.First.WithParticle(1),
	}
}

// Homonuclear reports whether both component keys share one species,
// i.e. whether particle exchange maps the pair onto the same label
// convention.
func (p Pair) Homonuclear() bool { return p.First.Species == p.Second.Species }

// Bounds limits the quantum numbers a species admits. Zero values
// leave the corresponding bound open.
type Bounds struct {
	// MaxN caps the principal quantum number; 0 means unbounded.
	MaxN int

	// MaxL caps the orbital quantum number; 0 means unbounded.
	MaxL int
}

// Registry is an explicit table of known species and their bounds.
// It replaces any notion of a process-wide species table: every parser
// receives the registry it should resolve tags against.
type Registry struct {
	species map[Species]Bounds
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{species: make(map[Species]Bounds)}
}

// Register adds a species with its bounds. Registering a tag twice
// returns ErrSpeciesKnown.
func (r *Registry) Register(s Species, b Bounds) error {
	if _, dup := r.species[s]; dup {
		return fmt.Errorf("state: register %q: %w", s, ErrSpeciesKnown)
	}
	r.species[s] = b
	return nil
}

// Known reports whether a species tag is registered.
func (r *Registry) Known(s Species) bool {
	_, ok := r.species[s]
	return ok
}

// BoundsOf returns the bounds of a registered species, or
// ErrUnknownSpecies.
func (r *Registry) BoundsOf(s Species) (Bounds, error) {
	b, ok := r.species[s]
	if !ok {
		return Bounds{}, fmt.Errorf("state: bounds of %q: %w", s, ErrUnknownSpecies)
	}
	return b, nil
}

// Species lists the registered tags in sorted order.
func (r *Registry) Species() []Species {
	out := make([]Species, 0, len(r.species))
	for s := range r.species {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
