package state_test

import (
	"fmt"

	"github.com/katalvlaran/pairspec/state"
)

// ExampleFromLabel parses a spectroscopic label; the orbital letter is
// accepted on input and rendered numerically on output.
func ExampleFromLabel() {
	reg := state.NewRegistry()
	_ = reg.Register("Rb", state.Bounds{})

	s, _ := state.FromLabel(reg, state.SingleParticle, "Rb:43,d,5/2,1/2")
	fmt.Println(s.Label())
	// Output:
	// Rb:43,2,5/2,1/2
}

// ExampleFromLabel_shared replicates one shared label to both slots of
// a two-particle state.
func ExampleFromLabel_shared() {
	reg := state.NewRegistry()
	_ = reg.Register("Rb", state.Bounds{})

	p, _ := state.FromLabel(reg, state.TwoParticle, "Rb:43,s,1/2,1/2")
	fmt.Println(p.Label())
	// Output:
	// Rb:43,0,1/2,1/2;1_Rb:43,0,1/2,1/2
}
