package msa

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/msalign/pairwise"
)

// computeDistances fills the unique self-similarities, the all-pairs
// distance matrix and the pairwise alignment cache under o.
//
// The pairwise cells are independent, so they fan out across a bounded
// worker pool; every worker writes only its own preallocated slot, and
// the matrix is assembled after Wait, keeping the phase race-free and
// its output order-independent.
func (m *Multiple) computeDistances(o AlignOptions) error {
	nU := len(m.reps)
	popts := o.pairwiseOptions()

	m.selfU = make([]float64, nU)
	for u := 0; u < nU; u++ {
		v, err := pairwise.SelfScore(m.seqU(u, o), m.scorer, popts)
		if err != nil {
			return err
		}
		m.selfU[u] = v
	}

	type cell struct{ i, j int }
	work := make([]cell, 0, nU*(nU-1)/2)
	for i := 0; i < nU; i++ {
		for j := i + 1; j < nU; j++ {
			work = append(work, cell{i, j})
		}
	}
	results := make([]pairwise.Result, len(work))

	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for k, w := range work {
		k, w := k, w
		g.Go(func() error {
			r, err := pairwise.Align(m.seqU(w.i, o), m.seqU(w.j, o), m.scorer, popts)
			if err != nil {
				return err
			}
			results[k] = r

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	dist := make([][]float64, nU)
	for i := range dist {
		dist[i] = make([]float64, nU)
	}
	pairs := make(map[[2]int]PairAlignment, len(work))
	for k, w := range work {
		r := results[k]
		d := r.Distance(m.selfU[w.i], m.selfU[w.j])
		dist[w.i][w.j], dist[w.j][w.i] = d, d
		pairs[[2]int{w.i, w.j}] = PairAlignment{A: r.A, B: r.B, Score: r.Score}
	}
	m.dist, m.pairs = dist, pairs

	return nil
}

// PairwiseAlignments returns the cached pairwise alignments expanded to
// the original sequence ids (map key {i, j} with i < j), with each
// sequence's own tokens spliced into the shared class rows. Pairs with
// identical class sequences align trivially, gap-free, at the shared
// self-similarity.
func (m *Multiple) PairwiseAlignments() (map[[2]int]PairAlignment, error) {
	if m.pairs == nil {
		return nil, ErrNotAligned
	}

	n := len(m.tokens)
	out := make(map[[2]int]PairAlignment, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ui, uj := m.uniqueOf[i], m.uniqueOf[j]
			if ui == uj {
				out[[2]int{i, j}] = PairAlignment{
					A:     append([]string(nil), m.tokens[i]...),
					B:     append([]string(nil), m.tokens[j]...),
					Score: m.selfU[ui],
				}
				continue
			}

			// Cache keys are ordered by unique id; flip back when the
			// input order disagrees.
			a, b := ui, uj
			flipped := a > b
			if flipped {
				a, b = b, a
			}
			rec := m.pairs[[2]int{a, b}]
			ra, rb := rec.A, rec.B
			if flipped {
				ra, rb = rb, ra
			}
			out[[2]int{i, j}] = PairAlignment{
				A:     spliceRow(ra, m.tokens[i]),
				B:     spliceRow(rb, m.tokens[j]),
				Score: rec.Score,
			}
		}
	}

	return out, nil
}
