package msa

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/msalign/pairwise"
	"github.com/katalvlaran/msalign/prosody"
	"github.com/katalvlaran/msalign/score"
)

// SumOfPairs returns the alignment objective: the average over all
// columns of the gap-weighted column score, computed over the unique
// rows (duplicates would only rescale the objective, never reorder it).
//
// A column's score is the mean pairwise class score of its residue
// pairs, where a pair touching a gap contributes gapWeight to the
// denominator and nothing to the numerator.
func (m *Multiple) SumOfPairs(gapWeight float64) (float64, error) {
	if !m.aligned {
		return 0, ErrNotAligned
	}

	return sumOfPairs(m.alnU, m.scorer, gapWeight)
}

// LocalPeaks returns the columns whose score strictly exceeds both
// neighbors; edge columns compare against their single neighbor. Peaks
// mark the conserved cores local refinement should not disturb.
func (m *Multiple) LocalPeaks(gapWeight float64) ([]int, error) {
	if !m.aligned {
		return nil, ErrNotAligned
	}

	w := width(m.alnU)
	cols := make([]float64, w)
	for c := 0; c < w; c++ {
		v, err := columnScore(m.alnU, c, m.scorer, gapWeight)
		if err != nil {
			return nil, err
		}
		cols[c] = v
	}

	var peaks []int
	for c := 0; c < w; c++ {
		if c > 0 && cols[c] <= cols[c-1] {
			continue
		}
		if c+1 < w && cols[c] <= cols[c+1] {
			continue
		}
		peaks = append(peaks, c)
	}

	return peaks, nil
}

// ConsensusSonority returns the column-wise consensus sonority of the
// published alignment. Requires a sonority model.
func (m *Multiple) ConsensusSonority() ([]int, error) {
	if !m.aligned {
		return nil, ErrNotAligned
	}
	if m.son == nil {
		return nil, ErrNoSonority
	}

	son := make([][]int, len(m.alnU))
	for u := range m.alnU {
		son[u] = m.sonU(u)
	}
	cons, degenerate := prosody.Consensus(m.alnU, son, pairwise.Gap)
	if len(degenerate) > 0 {
		m.logger.Warn("msa: degenerate consensus columns",
			zap.Ints("columns", degenerate),
		)
	}

	return cons, nil
}

// sumOfPairs averages the column scores of a row set.
func sumOfPairs(rows [][]string, sc score.Scorer, gapWeight float64) (float64, error) {
	w := width(rows)
	if w == 0 {
		return 0, nil
	}

	var total float64
	for c := 0; c < w; c++ {
		v, err := columnScore(rows, c, sc, gapWeight)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total / float64(w), nil
}

// columnScore computes the gap-weighted mean pair score of one column.
// A column with no weighted pairs (single row) scores 0.
func columnScore(rows [][]string, c int, sc score.Scorer, gapWeight float64) (float64, error) {
	var num, den float64
	for r := 0; r < len(rows); r++ {
		for s := r + 1; s < len(rows); s++ {
			x, y := rows[r][c], rows[s][c]
			if x == pairwise.Gap || y == pairwise.Gap {
				den += gapWeight
				continue
			}
			v, err := sc.Score(x, y)
			if err != nil {
				return 0, err
			}
			num += v
			den++
		}
	}
	if den == 0 {
		return 0, nil
	}

	return num / den, nil
}
