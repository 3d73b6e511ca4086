package basis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/state"
)

// singles builds n Rb s-states with ascending principal numbers.
func singles(t *testing.T, n int) []state.State {
	t.Helper()
	reg := state.NewRegistry()
	require.NoError(t, reg.Register("Rb", state.Bounds{}))
	out := make([]state.State, 0, n)
	for i := 0; i < n; i++ {
		k := state.StateKey{Species: "Rb", N: 10 + i, L: 0, J: 0.5, M: 0.5}
		_, err := state.ParseKey(reg, k.Label())
		require.NoError(t, err, "helper must build valid keys")
		out = append(out, state.Single{Key: k})
	}
	return out
}

// TestIndex_AddLookup covers the bidirectional mapping and the
// duplicate / absent sentinels.
func TestIndex_AddLookup(t *testing.T) {
	ss := singles(t, 3)
	ix := basis.New()

	for want, s := range ss {
		at, err := ix.Add(s)
		require.NoError(t, err)
		assert.Equal(t, want, at, "positions are assigned densely in insertion order")
	}
	assert.Equal(t, 3, ix.Size())

	at, err := ix.Lookup(ss[1])
	require.NoError(t, err)
	assert.Equal(t, 1, at)

	_, err = ix.Add(ss[0])
	assert.ErrorIs(t, err, basis.ErrAlreadyPresent)

	absent := state.Single{Key: state.StateKey{Species: "Rb", N: 99, J: 0.5, M: 0.5}}
	_, err = ix.Lookup(absent)
	assert.ErrorIs(t, err, basis.ErrNotFound)

	_, err = ix.At(3)
	assert.ErrorIs(t, err, basis.ErrPositionRange)
}

// TestIndex_RemovePreservesOrder verifies stable compaction: the
// survivors keep their relative order and get dense positions, while
// the receiver stays untouched.
func TestIndex_RemovePreservesOrder(t *testing.T) {
	ss := singles(t, 5)
	ix, err := basis.FromStates(ss...)
	require.NoError(t, err)

	pruned, err := ix.Remove([]int{1, 3})
	require.NoError(t, err)

	assert.Equal(t, 5, ix.Size(), "receiver must not be mutated")
	require.Equal(t, 3, pruned.Size())
	for want, s := range []state.State{ss[0], ss[2], ss[4]} {
		at, lerr := pruned.Lookup(s)
		require.NoError(t, lerr)
		assert.Equal(t, want, at)
	}

	_, err = ix.Remove([]int{5})
	assert.ErrorIs(t, err, basis.ErrPositionRange)
}

// TestIndex_TokenTracksMembership verifies that every membership
// change yields a fresh identity token, the hook sweep caching keys
// its whole-cache invalidation on.
func TestIndex_TokenTracksMembership(t *testing.T) {
	ss := singles(t, 3)
	ix := basis.New()
	t0 := ix.Token()

	_, err := ix.Add(ss[0])
	require.NoError(t, err)
	t1 := ix.Token()
	assert.NotEqual(t, t0, t1, "Add must refresh the token")

	_, err = ix.Lookup(ss[0])
	require.NoError(t, err)
	assert.Equal(t, t1, ix.Token(), "reads must not refresh the token")

	pruned, err := ix.Remove(nil)
	require.NoError(t, err)
	assert.NotEqual(t, ix.Token(), pruned.Token(), "derived indexes carry their own identity")
}

// TestIndex_FailedAddLeavesIndexUnmodified mirrors the malformed-label
// scenario: a failing construction must not disturb an existing index.
func TestIndex_FailedAddLeavesIndexUnmodified(t *testing.T) {
	reg := state.NewRegistry()
	require.NoError(t, reg.Register("Rb", state.Bounds{}))
	ss := singles(t, 2)
	ix, err := basis.FromStates(ss...)
	require.NoError(t, err)
	token := ix.Token()

	_, err = state.FromLabel(reg, state.SingleParticle, "")
	assert.ErrorIs(t, err, state.ErrLabelParse)

	_, err = ix.Add(nil)
	assert.ErrorIs(t, err, basis.ErrNilState)

	assert.Equal(t, 2, ix.Size())
	assert.Equal(t, token, ix.Token(), "failed additions leave membership and identity intact")
}
