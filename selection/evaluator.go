package selection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/state"
)

// Evaluator decides, per operator, whether a coupling between two
// basis states is structurally allowed. It is pure and safe for
// concurrent use.
type Evaluator struct {
	ops []Operator

	// maxTwoMShift bounds |Δ(total m)| in doubled units across all
	// operators; Candidates uses it to limit the bucket scan.
	maxTwoMShift int
}

// NewEvaluator builds an Evaluator over the given operator set.
// At least one operator is required; negative orders are rejected.
func NewEvaluator(ops ...Operator) (*Evaluator, error) {
	if len(ops) == 0 {
		return nil, ErrNoOperators
	}
	maxShift := 0
	for _, op := range ops {
		if op.Order < 0 || op.Order1 < 0 {
			return nil, fmt.Errorf("selection: operator %q orders (%d,%d): %w",
				op.Tag, op.Order, op.Order1, ErrBadOperator)
		}
		if s := 2 * (op.Order + op.Order1); s > maxShift {
			maxShift = s
		}
	}
	return &Evaluator{ops: append([]Operator(nil), ops...), maxTwoMShift: maxShift}, nil
}

// Operators returns a copy of the evaluator's operator set.
func (e *Evaluator) Operators() []Operator {
	return append([]Operator(nil), e.ops...)
}

// Allowed reports whether <a|op|b> can be structurally nonzero. It
// never calls a provider.
func (e *Evaluator) Allowed(a, b state.State, op Operator) bool {
	switch x := a.(type) {
	case state.Single:
		y, ok := b.(state.Single)
		if !ok || op.Order1 != 0 {
			return false
		}
		return x.Key != y.Key && keyAllowed(x.Key, y.Key, op.Order)
	case state.Pair:
		y, ok := b.(state.Pair)
		if !ok {
			return false
		}
		return e.pairAllowed(x, y, op)
	default:
		return false
	}
}

// AllowedAny reports whether any operator of the evaluator allows the
// coupling; restriction uses it as the reachability adjacency.
func (e *Evaluator) AllowedAny(a, b state.State) bool {
	for _, op := range e.ops {
		if e.Allowed(a, b, op) {
			return true
		}
	}
	return false
}

// pairAllowed applies the per-slot orders and, for interaction
// operators, total projection conservation.
func (e *Evaluator) pairAllowed(a, b state.Pair, op Operator) bool {
	if a == b {
		return false
	}
	if op.pairwise() {
		// Both slots transition under their multipole order; an
		// unchanged slot would carry a parity-vanishing element and is
		// rejected by keyAllowed. The leading interaction term along
		// the inter-particle axis conserves the total projection.
		if !keyAllowed(a.First, b.First, op.Order) {
			return false
		}
		if !keyAllowed(a.Second, b.Second, op.Order1) {
			return false
		}
		return a.First.M+a.Second.M == b.First.M+b.Second.M
	}
	// A single-particle operator inside a pair: the inactive slot is
	// frozen, the active slot carries the full transition.
	if op.Order > 0 {
		return a.Second == b.Second && a.First != b.First && keyAllowed(a.First, b.First, op.Order)
	}
	return a.First == b.First && a.Second != b.Second && keyAllowed(a.Second, b.Second, op.Order1)
}

// keyAllowed is the fine single-key rule set for a 2^order-pole:
// species and particle slot preserved, |Δl| ≤ order with multipole
// parity, |Δj| ≤ order, |Δm| ≤ order.
func keyAllowed(a, b state.StateKey, order int) bool {
	if a.Species != b.Species || a.Particle != b.Particle {
		return false
	}
	dl := a.L - b.L
	if dl < 0 {
		dl = -dl
	}
	if dl > order {
		return false
	}
	if (a.L+b.L+order)%2 != 0 {
		return false
	}
	if dj := a.J - b.J; dj > float64(order) || dj < -float64(order) {
		return false
	}
	if dm := a.M - b.M; dm > float64(order) || dm < -float64(order) {
		return false
	}
	return true
}

// Candidates is a coarse partner index over one basis.Index: states
// bucketed by (species signature, doubled total projection). It is
// built once per basis and shared read-only by assembly workers.
type Candidates struct {
	size    int
	buckets map[bucketKey][]int
	coarse  []bucketKey // per-position key, for the scan window
	shift   int
}

type bucketKey struct {
	sig  string
	twoM int
}

// NewCandidates indexes ix for coarse partner lookup under e's
// operator set.
func (e *Evaluator) NewCandidates(ix *basis.Index) (*Candidates, error) {
	if ix == nil {
		return nil, ErrNilIndex
	}
	c := &Candidates{
		size:    ix.Size(),
		buckets: make(map[bucketKey][]int),
		coarse:  make([]bucketKey, ix.Size()),
		shift:   e.maxTwoMShift,
	}
	for i := 0; i < ix.Size(); i++ {
		s, err := ix.At(i)
		if err != nil {
			return nil, err
		}
		k := coarseKey(s)
		c.coarse[i] = k
		c.buckets[k] = append(c.buckets[k], i)
	}
	return c, nil
}

// For returns the sorted candidate partners of position i: members of
// every bucket whose species signature matches and whose total
// projection lies within the operator set's reach. The fine Allowed
// check still applies to each returned partner.
func (c *Candidates) For(i int) ([]int, error) {
	if i < 0 || i >= c.size {
		return nil, fmt.Errorf("selection: candidates for %d of %d: %w", i, c.size, ErrPositionRange)
	}
	at := c.coarse[i]
	var out []int
	for twoM := at.twoM - c.shift; twoM <= at.twoM+c.shift; twoM++ {
		for _, j := range c.buckets[bucketKey{sig: at.sig, twoM: twoM}] {
			if j != i {
				out = append(out, j)
			}
		}
	}
	sort.Ints(out)
	return out, nil
}

// coarseKey derives the bucket of a state: the species/particle
// signature (operators preserve both) and doubled total projection.
func coarseKey(s state.State) bucketKey {
	var sig strings.Builder
	twoM := 0
	for _, k := range s.Keys() {
		fmt.Fprintf(&sig, "%s/%d;", k.Species, k.Particle)
		twoM += int(2 * k.M)
	}
	return bucketKey{sig: sig.String(), twoM: twoM}
}
