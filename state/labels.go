package state

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects the state representation FromLabel constructs.
type Kind int

const (
	// SingleParticle parses one token into a Single state.
	SingleParticle Kind = iota

	// TwoParticle parses either two ";"-joined tokens, or one shared
	// token replicated to both particles with "0_"/"1_" prefixes.
	TwoParticle
)

// spectroscopic letter codes for l; "j" is skipped by convention.
var orbitalLetters = map[string]int{
	"s": 0, "p": 1, "d": 2, "f": 3, "g": 4, "h": 5,
	"i": 6, "k": 7, "l": 8, "m": 9, "n": 10, "o": 11,
}

// pairDelimiter joins the two tokens of a two-particle label.
const pairDelimiter = ";"

// FromLabel is the variant-dispatched factory: it parses label into a
// Single or Pair state according to kind, resolving species through
// reg. All failures wrap ErrLabelParse; reg is never mutated.
func FromLabel(reg *Registry, kind Kind, label string) (State, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	switch kind {
	case SingleParticle:
		k, err := ParseKey(reg, label)
		if err != nil {
			return nil, err
		}
		return Single{Key: k}, nil
	case TwoParticle:
		if strings.Contains(label, pairDelimiter) {
			return fromPairLabel(reg, label)
		}
		return fromSharedLabel(reg, label)
	default:
		return nil, fmt.Errorf("state: unknown kind %d: %w", kind, ErrLabelParse)
	}
}

// fromPairLabel parses "A;B": first token → particle 0, second → 1.
func fromPairLabel(reg *Registry, label string) (State, error) {
	tokens := strings.Split(label, pairDelimiter)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("state: pair label %q needs exactly two %q-separated tokens: %w",
			label, pairDelimiter, ErrLabelParse)
	}
	first, err := ParseKey(reg, tokens[0])
	if err != nil {
		return nil, err
	}
	second, err := ParseKey(reg, tokens[1])
	if err != nil {
		return nil, err
	}
	return Pair{First: first.WithParticle(0), Second: second.WithParticle(1)}, nil
}

// fromSharedLabel replicates one token to both particles by tagging it
// with the particle prefixes, so "Rb:43,0,1/2,1/2" becomes the pair
// (parse("0_Rb:..."), parse("1_Rb:...")).
func fromSharedLabel(reg *Registry, label string) (State, error) {
	first, err := ParseKey(reg, "0_"+label)
	if err != nil {
		return nil, err
	}
	second, err := ParseKey(reg, "1_"+label)
	if err != nil {
		return nil, err
	}
	return Pair{First: first, Second: second}, nil
}

// ParseKey parses one single-particle token of the label grammar into
// a StateKey. It is total over the grammar: every failure (empty
// input, unknown species, malformed or out-of-range quantum numbers)
// returns an error wrapping ErrLabelParse.
func ParseKey(reg *Registry, token string) (StateKey, error) {
	if reg == nil {
		return StateKey{}, ErrNilRegistry
	}
	if token == "" {
		return StateKey{}, fmt.Errorf("state: empty label: %w", ErrLabelParse)
	}

	particle := 0
	rest := token
	if p, tail, ok := strings.Cut(token, "_"); ok {
		switch p {
		case "0":
			particle = 0
		case "1":
			particle = 1
		default:
			return StateKey{}, fmt.Errorf("state: label %q: particle prefix %q: %w", token, p, ErrLabelParse)
		}
		rest = tail
	}

	species, numbers, ok := strings.Cut(rest, ":")
	if !ok || species == "" {
		return StateKey{}, fmt.Errorf("state: label %q: missing species tag: %w", token, ErrLabelParse)
	}
	if !reg.Known(Species(species)) {
		return StateKey{}, fmt.Errorf("state: label %q: %q: %w: %w",
			token, species, ErrUnknownSpecies, ErrLabelParse)
	}

	fields := strings.Split(numbers, ",")
	if len(fields) != 4 {
		return StateKey{}, fmt.Errorf("state: label %q: want n,l,j,m, got %d fields: %w",
			token, len(fields), ErrLabelParse)
	}

	n, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || n < 1 {
		return StateKey{}, fmt.Errorf("state: label %q: principal number %q: %w", token, fields[0], ErrLabelParse)
	}
	l, err := parseOrbital(strings.TrimSpace(fields[1]))
	if err != nil {
		return StateKey{}, fmt.Errorf("state: label %q: %w: %w", token, err, ErrLabelParse)
	}
	twoJ, err := parseHalf(strings.TrimSpace(fields[2]))
	if err != nil {
		return StateKey{}, fmt.Errorf("state: label %q: j %q: %w", token, fields[2], ErrLabelParse)
	}
	twoM, err := parseHalf(strings.TrimSpace(fields[3]))
	if err != nil {
		return StateKey{}, fmt.Errorf("state: label %q: m %q: %w", token, fields[3], ErrLabelParse)
	}

	key := StateKey{
		Species:  Species(species),
		Particle: particle,
		N:        n,
		L:        l,
		J:        float64(twoJ) / 2,
		M:        float64(twoM) / 2,
	}
	if err = validateKey(reg, key, twoJ, twoM); err != nil {
		return StateKey{}, fmt.Errorf("state: label %q: %w: %w", token, err, ErrLabelParse)
	}
	return key, nil
}

// parseOrbital accepts "2" or "d" style orbital numbers.
func parseOrbital(s string) (int, error) {
	if l, ok := orbitalLetters[strings.ToLower(s)]; ok && len(s) == 1 {
		return l, nil
	}
	l, err := strconv.Atoi(s)
	if err != nil || l < 0 {
		return 0, fmt.Errorf("orbital number %q", s)
	}
	return l, nil
}

// parseHalf parses a half-integer as "1.5", "-0.5" or "3/2", returning
// the doubled integer value.
func parseHalf(s string) (int, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		if den != "2" {
			return 0, fmt.Errorf("fraction %q: denominator must be 2", s)
		}
		v, err := strconv.Atoi(num)
		if err != nil {
			return 0, fmt.Errorf("fraction %q", s)
		}
		return v, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("number %q", s)
	}
	two := v * 2
	if two != float64(int(two)) {
		return 0, fmt.Errorf("%q is not on the half-integer grid", s)
	}
	return int(two), nil
}

// validateKey enforces the grammar's range rules: 0 ≤ l < n, registry
// bounds, j = l ± 1/2, |m| ≤ j on a matching half-integer grid.
func validateKey(reg *Registry, k StateKey, twoJ, twoM int) error {
	if k.L >= k.N {
		return fmt.Errorf("l=%d must be below n=%d", k.L, k.N)
	}
	b, err := reg.BoundsOf(k.Species)
	if err != nil {
		return err
	}
	if b.MaxN > 0 && k.N > b.MaxN {
		return fmt.Errorf("n=%d exceeds species bound %d", k.N, b.MaxN)
	}
	if b.MaxL > 0 && k.L > b.MaxL {
		return fmt.Errorf("l=%d exceeds species bound %d", k.L, b.MaxL)
	}
	if twoJ != 2*k.L-1 && twoJ != 2*k.L+1 {
		return fmt.Errorf("j=%s is not l ± 1/2 for l=%d", halfString(k.J), k.L)
	}
	if twoJ < 0 {
		return fmt.Errorf("j=%s must be non-negative", halfString(k.J))
	}
	if twoM < -twoJ || twoM > twoJ {
		return fmt.Errorf("m=%s outside [-j, j]", halfString(k.M))
	}
	if (twoM-twoJ)%2 != 0 {
		return fmt.Errorf("m=%s not on the j=%s grid", halfString(k.M), halfString(k.J))
	}
	return nil
}
