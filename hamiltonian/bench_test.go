// Benchmarks for Hamiltonian assembly over growing bases, with and
// without a reused candidate index.
package hamiltonian_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/hamiltonian"
	"github.com/katalvlaran/pairspec/selection"
)

// benchSizes are the basis sizes to benchmark.
var benchSizes = []int{64, 256, 1024}

// sink to defeat dead-code elimination
var sinkM *hamiltonian.Matrix

// benchBasis builds a dipole-coupled s/p ladder of the given size,
// spreading states over principal numbers and both m projections so
// the candidate buckets stay populated but selective.
func benchBasis(b *testing.B, size int) *basis.Index {
	b.Helper()
	ix := basis.New()
	for i := 0; i < size; i++ {
		l := i % 2
		m := 0.5
		if i%4 >= 2 {
			m = -0.5
		}
		s := single(20+i/4, l, float64(l)+0.5, m)
		if _, err := ix.Add(s); err != nil {
			b.Fatal(err)
		}
	}
	return ix
}

func BenchmarkAssemble(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			ix := benchBasis(b, n)
			ev, err := selection.NewEvaluator(selection.Dipole())
			if err != nil {
				b.Fatal(err)
			}
			prov := &nProvider{element: 0.25i}
			at := selection.Params{"field": 1}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := hamiltonian.Assemble(ix, ev, energies(0), prov, at)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

// BenchmarkAssemble_ReusedCandidates measures the sweep-loop shape:
// the candidate index is built once per basis and shared across
// parameter points.
func BenchmarkAssemble_ReusedCandidates(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			ix := benchBasis(b, n)
			ev, err := selection.NewEvaluator(selection.Dipole())
			if err != nil {
				b.Fatal(err)
			}
			cand, err := ev.NewCandidates(ix)
			if err != nil {
				b.Fatal(err)
			}
			prov := &nProvider{element: 0.25i}
			at := selection.Params{"field": 1}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := hamiltonian.Assemble(ix, ev, energies(0), prov, at,
					hamiltonian.WithCandidates(cand))
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}
