package pair

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/selection"
	"github.com/katalvlaran/pairspec/state"
)

// Sentinel errors for pair composition.
var (
	// ErrNotSingle indicates a composed input holds non-Single states.
	ErrNotSingle = errors.New("pair: input basis must hold single-particle states")

	// ErrNilRule indicates Compose was called without a conservation rule.
	ErrNilRule = errors.New("pair: conservation rule is nil")

	// ErrNotPair indicates the interaction provider was invoked on
	// non-Pair states.
	ErrNotPair = errors.New("pair: state is not a pair")

	// ErrNilProvider indicates an adapter over a nil collaborator.
	ErrNilProvider = errors.New("pair: provider is nil")
)

// ConservationRule decides whether a (particle 0, particle 1) key
// combination enters the composed basis.
type ConservationRule func(k0, k1 state.StateKey) bool

// TotalProjectionIn keeps combinations whose total projection m₀+m₁
// lies within [min, max].
func TotalProjectionIn(min, max float64) ConservationRule {
	return func(k0, k1 state.StateKey) bool {
		m := k0.M + k1.M
		return m >= min && m <= max
	}
}

// Compose builds the conservation-filtered tensor product of two
// single-particle bases. Component keys are re-tagged with their
// particle slot; iteration order is deterministic (ix0 outer, ix1
// inner), so composed positions are reproducible.
func Compose(ix0, ix1 *basis.Index, rule ConservationRule) (*basis.Index, error) {
	if ix0 == nil || ix1 == nil {
		return nil, basis.ErrNilIndex
	}
	if rule == nil {
		return nil, ErrNilRule
	}
	out := basis.New()
	for i := 0; i < ix0.Size(); i++ {
		s0, err := ix0.At(i)
		if err != nil {
			return nil, err
		}
		k0, err := singleKey(s0)
		if err != nil {
			return nil, err
		}
		for j := 0; j < ix1.Size(); j++ {
			s1, err := ix1.At(j)
			if err != nil {
				return nil, err
			}
			k1, err := singleKey(s1)
			if err != nil {
				return nil, err
			}
			if !rule(k0, k1) {
				continue
			}
			p := state.Pair{First: k0.WithParticle(0), Second: k1.WithParticle(1)}
			if _, err = out.Add(p); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func singleKey(s state.State) (state.StateKey, error) {
	single, ok := s.(state.Single)
	if !ok {
		return state.StateKey{}, fmt.Errorf("pair: %q: %w", s.Label(), ErrNotSingle)
	}
	return single.Key, nil
}

// MultipoleProvider supplies the multipole expansion of the
// inter-particle interaction. The active order pairs are provider
// configuration; Coefficient is only consulted for selection-approved
// transitions.
type MultipoleProvider interface {
	// Orders enumerates the active (q₀, q₁) multipole order pairs.
	Orders() [][2]int

	// Coefficient returns the interaction matrix element
	// ⟨a₀ a₁| V(q₀,q₁) |b₀ b₁⟩ at the parameter point (which carries
	// the inter-particle separation).
	Coefficient(a0, a1, b0, b1 state.StateKey, q0, q1 int, at selection.Params) (complex128, error)
}

// interactionProvider adapts a MultipoleProvider to the
// selection.CouplingProvider contract.
type interactionProvider struct {
	mp MultipoleProvider
}

// InteractionProvider exposes a multipole expansion as a coupling
// provider over pair states, one selection.Interaction operator per
// active order pair.
func InteractionProvider(mp MultipoleProvider) (selection.CouplingProvider, error) {
	if mp == nil {
		return nil, ErrNilProvider
	}
	return interactionProvider{mp: mp}, nil
}

// Operators implements selection.CouplingProvider.
func (p interactionProvider) Operators() []selection.Operator {
	orders := p.mp.Orders()
	out := make([]selection.Operator, 0, len(orders))
	for _, q := range orders {
		out = append(out, selection.Interaction(q[0], q[1]))
	}
	return out
}

// Coupling implements selection.CouplingProvider.
func (p interactionProvider) Coupling(a, b state.State, op selection.Operator, at selection.Params) (complex128, error) {
	pa, ok := a.(state.Pair)
	if !ok {
		return 0, fmt.Errorf("pair: coupling row %q: %w", a.Label(), ErrNotPair)
	}
	pb, ok := b.(state.Pair)
	if !ok {
		return 0, fmt.Errorf("pair: coupling col %q: %w", b.Label(), ErrNotPair)
	}
	return p.mp.Coefficient(pa.First, pa.Second, pb.First, pb.Second, op.Order, op.Order1, at)
}

// SumEnergies adapts a single-particle energy provider to pair states
// by summing the component energies; single states pass through.
func SumEnergies(p selection.EnergyProvider) (selection.EnergyProvider, error) {
	if p == nil {
		return nil, ErrNilProvider
	}
	return selection.EnergyFunc(func(s state.State, at selection.Params) (float64, error) {
		switch x := s.(type) {
		case state.Single:
			return p.Energy(x, at)
		case state.Pair:
			e0, err := p.Energy(state.Single{Key: x.First}, at)
			if err != nil {
				return 0, err
			}
			e1, err := p.Energy(state.Single{Key: x.Second}, at)
			if err != nil {
				return 0, err
			}
			return e0 + e1, nil
		default:
			return 0, fmt.Errorf("pair: energy of %q: %w", s.Label(), ErrNotPair)
		}
	}), nil
}
