package msa

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/katalvlaran/msalign/pairwise"
	"github.com/katalvlaran/msalign/prosody"
	"github.com/katalvlaran/msalign/score"
)

// LibAlign runs the consistency (library) pipeline: every unique pair
// is aligned in global, overlap and local mode, the residue pairings of
// those alignments are accumulated into a position library weighted by
// each alignment's percent identity, transitive evidence is folded in
// through every third sequence, and the frozen library then replaces
// the class scorer for one progressive merge over position tokens.
//
// Positions are addressed as "u.k" (unique id, token index), so library
// scores are specific to a residue pairing rather than a class pairing;
// pairings never seen in any pairwise alignment score the neutral 0.
// The guide tree reuses the class-level distance matrix.
func (m *Multiple) LibAlign(o AlignOptions) error {
	m.opts = o
	m.swaps = nil

	if err := m.computeDistances(o); err != nil {
		return err
	}

	lib, globals, err := m.buildLibrary(o)
	if err != nil {
		return err
	}
	m.addTransitive(lib, globals)
	frozen := lib.Freeze()

	rowsPos, err := m.mergeTree(o, frozen, func(u int) []string {
		return posTokens(u, len(m.classes[m.reps[u]]))
	})
	if err != nil {
		return err
	}

	// Map position rows back onto class rows before publishing.
	rows := make([][]string, len(rowsPos))
	for u, row := range rowsPos {
		rows[u] = spliceRow(row, m.classes[m.reps[u]])
	}
	m.publish(rows)

	m.logger.Info("msa: library alignment published",
		zap.Int("uniques", len(m.reps)),
		zap.Int("columns", width(rows)),
		zap.Int("library", lib.Len()),
	)

	return nil
}

// posLink is the global-mode pairing of one unique pair: an injective
// position map plus the alignment's identity weight.
type posLink struct {
	mp map[int]int
	w  float64
}

// buildLibrary collects direct evidence: the identity of every position
// with itself, plus the residue pairings of three alignment modes per
// unique pair, each weighted by that alignment's percent identity.
// Global-mode pairings are also returned for the transitivity pass.
func (m *Multiple) buildLibrary(o AlignOptions) (*score.Library, map[[2]int]posLink, error) {
	lib := score.NewLibrary()
	nU := len(m.reps)

	for u := 0; u < nU; u++ {
		for k := range m.classes[m.reps[u]] {
			p := posToken(u, k)
			lib.Add(p, p, 1)
		}
	}

	globals := make(map[[2]int]posLink, nU*(nU-1)/2)
	modes := []pairwise.Mode{pairwise.Global, pairwise.Overlap, pairwise.Local}
	for i := 0; i < nU; i++ {
		for j := i + 1; j < nU; j++ {
			sim, err := m.simU(i, j)
			if err != nil {
				return nil, nil, err
			}
			wi, ti := m.vecU(i, o)
			wj, tj := m.vecU(j, o)

			for _, mode := range modes {
				aopts := o.pairwiseOptions()
				aopts.Mode = mode
				alnA, alnB, _, err := pairwise.AlignMatrix(sim, wi, wj, ti, tj, aopts)
				if err != nil {
					return nil, nil, err
				}

				pairsIdx, w := m.identityWeight(i, j, alnA, alnB)
				if w == 0 {
					continue
				}
				for _, pr := range pairsIdx {
					lib.Add(posToken(i, pr[0]), posToken(j, pr[1]), w)
				}
				if mode == pairwise.Global {
					mp := make(map[int]int, len(pairsIdx))
					for _, pr := range pairsIdx {
						mp[pr[0]] = pr[1]
					}
					globals[[2]int{i, j}] = posLink{mp: mp, w: w}
				}
			}
		}
	}

	return lib, globals, nil
}

// identityWeight extracts the residue pairings of one index alignment
// and its percent identity over the uniques' class tokens.
func (m *Multiple) identityWeight(i, j int, alnA, alnB []int) ([][2]int, float64) {
	ci, cj := m.classes[m.reps[i]], m.classes[m.reps[j]]
	pairsIdx := make([][2]int, 0, len(alnA))
	matches := 0
	for k := range alnA {
		ka, kb := alnA[k], alnB[k]
		if ka < 0 || kb < 0 {
			continue
		}
		pairsIdx = append(pairsIdx, [2]int{ka, kb})
		if ci[ka] == cj[kb] {
			matches++
		}
	}
	if len(pairsIdx) == 0 {
		return nil, 0
	}

	return pairsIdx, float64(matches) / float64(len(pairsIdx))
}

// addTransitive folds indirect evidence into the library: whenever the
// global alignments pair position pi with pk (through sequence k) and
// pk with pj, the pairing pi-pj gains the weaker of the two weights.
func (m *Multiple) addTransitive(lib *score.Library, globals map[[2]int]posLink) {
	nU := len(m.reps)
	for i := 0; i < nU; i++ {
		for j := i + 1; j < nU; j++ {
			for k := 0; k < nU; k++ {
				if k == i || k == j {
					continue
				}
				ik, ok := lookupLink(globals, i, k)
				if !ok {
					continue
				}
				kj, ok := lookupLink(globals, k, j)
				if !ok {
					continue
				}
				w := math.Min(ik.w, kj.w)
				for pi, pk := range ik.mp {
					if pj, ok := kj.mp[pk]; ok {
						lib.Add(posToken(i, pi), posToken(j, pj), w)
					}
				}
			}
		}
	}
}

// lookupLink fetches the directed position map a -> b from the ordered
// global-link table, inverting the stored map when needed (global
// pairings are injective, so inversion is lossless).
func lookupLink(globals map[[2]int]posLink, a, b int) (posLink, bool) {
	if a < b {
		l, ok := globals[[2]int{a, b}]
		return l, ok
	}
	l, ok := globals[[2]int{b, a}]
	if !ok {
		return posLink{}, false
	}
	inv := make(map[int]int, len(l.mp))
	for x, y := range l.mp {
		inv[y] = x
	}

	return posLink{mp: inv, w: l.w}, true
}

// simU builds the dense class-score matrix of two uniques.
func (m *Multiple) simU(i, j int) ([][]float64, error) {
	a, b := m.classes[m.reps[i]], m.classes[m.reps[j]]
	sim := make([][]float64, len(a))
	for x := range a {
		sim[x] = make([]float64, len(b))
		for y := range b {
			v, err := m.scorer.Score(a[x], b[y])
			if err != nil {
				return nil, err
			}
			sim[x][y] = v
		}
	}

	return sim, nil
}

// vecU returns the gap-weight vector and tags of one unique, falling
// back to uniform GapOpen weights when sonority is absent.
func (m *Multiple) vecU(u int, o AlignOptions) ([]float64, []prosody.Tag) {
	s := m.seqU(u, o)
	if s.Weights != nil {
		return s.Weights, s.Tags
	}
	w := make([]float64, len(s.Tokens))
	for i := range w {
		w[i] = o.GapOpen
	}

	return w, s.Tags
}

// posToken encodes one residue position as "unique.index".
func posToken(u, k int) string {
	return strconv.Itoa(u) + "." + strconv.Itoa(k)
}

// posTokens enumerates the position tokens of one unique.
func posTokens(u, n int) []string {
	out := make([]string, n)
	for k := range out {
		out[k] = posToken(u, k)
	}

	return out
}
