package pair_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/hamiltonian"
	"github.com/katalvlaran/pairspec/pair"
	"github.com/katalvlaran/pairspec/selection"
	"github.com/katalvlaran/pairspec/state"
)

func single(n, l int, j, m float64) state.Single {
	return state.Single{Key: state.StateKey{Species: "Rb", N: n, L: l, J: j, M: m}}
}

// triplet is a 3-state single-particle basis over distinct n with
// m = -1/2, 1/2, 1/2.
func triplet(t *testing.T) *basis.Index {
	t.Helper()
	ix, err := basis.FromStates(
		single(40, 1, 1.5, -0.5),
		single(41, 1, 1.5, 0.5),
		single(42, 1, 1.5, 0.5),
	)
	require.NoError(t, err)
	return ix
}

// TestCompose_ConservationFilter composes two 3-state bases under a
// rule admitting 4 of the 9 combinations.
func TestCompose_ConservationFilter(t *testing.T) {
	ix0, ix1 := triplet(t), triplet(t)

	// Total m = 1 needs +1/2 in both slots: the four products of
	// {n=41, n=42} with itself — 4 of 9.
	rule := pair.TotalProjectionIn(1, 1)
	composed, err := pair.Compose(ix0, ix1, rule)
	require.NoError(t, err)
	require.Equal(t, 4, composed.Size())

	for _, s := range composed.States() {
		p, ok := s.(state.Pair)
		require.True(t, ok, "composed states are pairs")
		assert.Equal(t, 0, p.First.Particle)
		assert.Equal(t, 1, p.Second.Particle)
		assert.True(t, rule(p.First, p.Second), "every composed state satisfies the rule")
	}

	// Deterministic ordering: particle 0 outer loop, particle 1 inner,
	// so the first survivor combines position 1 with itself.
	first, err := composed.At(0)
	require.NoError(t, err)
	assert.Equal(t, 41, first.Keys()[0].N)
	assert.Equal(t, 41, first.Keys()[1].N)
	assert.Equal(t, 0.5, first.Keys()[0].M)
}

// TestCompose_Violations covers the input guards.
func TestCompose_Violations(t *testing.T) {
	ix := triplet(t)

	_, err := pair.Compose(nil, ix, pair.TotalProjectionIn(0, 0))
	assert.ErrorIs(t, err, basis.ErrNilIndex)
	_, err = pair.Compose(ix, ix, nil)
	assert.ErrorIs(t, err, pair.ErrNilRule)

	pp := state.Pair{
		First:  state.StateKey{Species: "Rb", N: 40, L: 0, J: 0.5, M: 0.5},
		Second: state.StateKey{Species: "Rb", N: 40, L: 0, J: 0.5, M: 0.5, Particle: 1},
	}
	mixed, err := basis.FromStates(pp)
	require.NoError(t, err)
	_, err = pair.Compose(mixed, ix, pair.TotalProjectionIn(0, 0))
	assert.ErrorIs(t, err, pair.ErrNotSingle)
}

// dipoleDipole is a toy multipole provider: a single (1,1) order with
// a coefficient scaling as 1/R³.
type dipoleDipole struct{ calls int }

func (d *dipoleDipole) Orders() [][2]int { return [][2]int{{1, 1}} }

func (d *dipoleDipole) Coefficient(_, _, _, _ state.StateKey, q0, q1 int, at selection.Params) (complex128, error) {
	d.calls++
	r := at["R"]
	return complex(float64(q0*q1)/(r*r*r), 0), nil
}

// TestInteractionProvider_WiresIntoAssembly composes a small pair
// basis and assembles the dipole-dipole interaction through the
// standard pipeline, checking that only projection-conserving pairs
// reach the provider.
func TestInteractionProvider_WiresIntoAssembly(t *testing.T) {
	// Two s/p states per particle: pair basis of total m = 1
	// combinations couples via the (1,1) interaction.
	ix1p, err := basis.FromStates(
		single(40, 0, 0.5, 0.5),
		single(40, 1, 1.5, 0.5),
	)
	require.NoError(t, err)
	composed, err := pair.Compose(ix1p, ix1p, pair.TotalProjectionIn(1, 1))
	require.NoError(t, err)
	require.Equal(t, 4, composed.Size())

	mp := &dipoleDipole{}
	couplings, err := pair.InteractionProvider(mp)
	require.NoError(t, err)
	ev, err := selection.NewEvaluator(couplings.Operators()...)
	require.NoError(t, err)

	energies, err := pair.SumEnergies(selection.EnergyFunc(
		func(s state.State, _ selection.Params) (float64, error) {
			return float64(s.Keys()[0].L), nil
		}))
	require.NoError(t, err)

	at := selection.Params{"R": 2.0}
	m, err := hamiltonian.Assemble(composed, ev, energies, couplings, at)
	require.NoError(t, err)

	// (s,s) ↔ (p,p) and (s,p) ↔ (p,s): both slots flip l by one with
	// Δm = 0 each; the two remaining combinations are diagonal-only.
	assert.Equal(t, 2, mp.calls, "only selection-approved pairs reach the multipole provider")

	ss, err := composed.Lookup(state.Pair{
		First:  state.StateKey{Species: "Rb", N: 40, L: 0, J: 0.5, M: 0.5},
		Second: state.StateKey{Species: "Rb", N: 40, L: 0, J: 0.5, M: 0.5, Particle: 1},
	})
	require.NoError(t, err)
	pp, err := composed.Lookup(state.Pair{
		First:  state.StateKey{Species: "Rb", N: 40, L: 1, J: 1.5, M: 0.5},
		Second: state.StateKey{Species: "Rb", N: 40, L: 1, J: 1.5, M: 0.5, Particle: 1},
	})
	require.NoError(t, err)

	v, err := m.At(ss, pp)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/8.0, real(v), 1e-12, "1/R³ at R=2")

	d, err := m.At(ss, ss)
	require.NoError(t, err)
	assert.Equal(t, complex128(0), d, "unperturbed (s,s) diagonal is 0+0")
}

// TestSumEnergies_PairDiagonal checks the component-energy sum.
func TestSumEnergies_PairDiagonal(t *testing.T) {
	base := selection.EnergyFunc(func(s state.State, _ selection.Params) (float64, error) {
		return float64(s.Keys()[0].N), nil
	})
	sum, err := pair.SumEnergies(base)
	require.NoError(t, err)

	p := state.Pair{
		First:  state.StateKey{Species: "Rb", N: 40, L: 0, J: 0.5, M: 0.5},
		Second: state.StateKey{Species: "Rb", N: 43, L: 0, J: 0.5, M: 0.5, Particle: 1},
	}
	e, err := sum.Energy(p, nil)
	require.NoError(t, err)
	assert.Equal(t, 83.0, e)

	_, err = pair.SumEnergies(nil)
	assert.ErrorIs(t, err, pair.ErrNilProvider)
	_, err = pair.InteractionProvider(nil)
	assert.ErrorIs(t, err, pair.ErrNilProvider)
}
