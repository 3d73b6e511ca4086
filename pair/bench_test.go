// Benchmarks for pair composition over growing single-particle bases.
package pair_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/pair"
)

// benchSizes are the single-particle basis sizes; the raw product
// space is the square of each.
var benchSizes = []int{32, 128, 512}

// sink to defeat dead-code elimination
var sinkIx *basis.Index

// benchAtoms builds a single-particle basis spreading states over
// principal numbers and both m projections, so the conservation rule
// passes roughly half of the product space.
func benchAtoms(b *testing.B, size int) *basis.Index {
	b.Helper()
	ix := basis.New()
	for i := 0; i < size; i++ {
		m := 0.5
		if i%2 == 1 {
			m = -0.5
		}
		if _, err := ix.Add(single(20+i/2, 1, 1.5, m)); err != nil {
			b.Fatal(err)
		}
	}
	return ix
}

func BenchmarkCompose(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			ix0 := benchAtoms(b, n)
			ix1 := benchAtoms(b, n)
			rule := pair.TotalProjectionIn(0, 0)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				composed, err := pair.Compose(ix0, ix1, rule)
				if err != nil {
					b.Fatal(err)
				}
				sinkIx = composed
			}
		})
	}
}
