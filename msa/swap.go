package msa

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/msalign/pairwise"
	"github.com/katalvlaran/msalign/score"
)

// swapMarker is the placeholder a shift hypothesis leaves in a vacated
// cell, distinguishing "moved away" from a plain gap during scoring.
const swapMarker = "+"

// markerClash charges a placeholder aligned against a residue, large
// enough to veto any hypothesis that tramples real material.
const markerClash = -1e6

// SwapCheck scans the published alignment for crossed sites: column
// triples (i, i+1, i+2) where the outer residues of different rows sit
// on opposite sides, the signature of a transposition rather than an
// ordinary indel.
//
// A window qualifies as a candidate when no row carries residues in
// both outer columns while each outer column carries at least one. Both
// shift hypotheses (outer residues gathered left, gathered right) are
// scored with swap-aware rules and averaged; the window is accepted on
// a strict fixed-point improvement over the unmodified window. Accepted
// windows are resolved greedily left to right, discarding any start
// within two columns of the previous acceptance, and recorded in
// SwapIndex as {i, i+1, i+2} triples.
//
// The alignment itself is never modified; detection is diagnostic.
func (m *Multiple) SwapCheck(o SwapOptions) (bool, error) {
	if !m.aligned {
		return false, ErrNotAligned
	}
	if o.Penalty > 0 {
		return false, ErrBadSwapPenalty
	}
	m.swaps = nil

	accepted := make([]int, 0, 2)
	last := -3
	for _, i := range swapCandidates(m.alnU) {
		if i-last < 3 {
			continue
		}
		ok, err := m.swapImproves(i, o.Penalty)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		accepted = append(accepted, i)
		last = i
	}

	for _, i := range accepted {
		m.swaps = append(m.swaps, [3]int{i, i + 1, i + 2})
	}
	if len(accepted) > 0 {
		m.logger.Info("msa: swapped sites detected", zap.Int("windows", len(accepted)))
	}

	return len(accepted) > 0, nil
}

// swapCandidates returns the window starts whose outer columns split
// their residues across rows: no row occupies both outer columns, and
// neither outer column is empty.
func swapCandidates(rows [][]string) []int {
	w := width(rows)
	var out []int
	for i := 0; i+2 < w; i++ {
		split, resL, resR := true, false, false
		for _, row := range rows {
			l, r := row[i] != pairwise.Gap, row[i+2] != pairwise.Gap
			if l && r {
				split = false
				break
			}
			resL = resL || l
			resR = resR || r
		}
		if split && resL && resR {
			out = append(out, i)
		}
	}

	return out
}

// swapImproves scores both shift hypotheses of window i against the
// unmodified window, comparing at fixed precision so float accumulation
// noise cannot flip the verdict.
func (m *Multiple) swapImproves(i int, penalty float64) (bool, error) {
	orig, err := windowScore(m.window(i, 0), penalty, m.scorer)
	if err != nil {
		return false, err
	}
	left, err := windowScore(m.window(i, -1), penalty, m.scorer)
	if err != nil {
		return false, err
	}
	right, err := windowScore(m.window(i, +1), penalty, m.scorer)
	if err != nil {
		return false, err
	}
	avg := (left + right) / 2

	return scaled(avg) > scaled(orig), nil
}

// window copies the three columns at i under a shift hypothesis:
// dir +1 moves each lone outer residue from column i to i+2, dir -1 the
// reverse, dir 0 copies verbatim. Vacated cells get the marker.
func (m *Multiple) window(i, dir int) [][3]string {
	out := make([][3]string, len(m.alnU))
	for r, row := range m.alnU {
		c := [3]string{row[i], row[i+1], row[i+2]}
		switch {
		case dir > 0 && c[0] != pairwise.Gap && c[2] == pairwise.Gap:
			c[0], c[2] = swapMarker, c[0]
		case dir < 0 && c[2] != pairwise.Gap && c[0] == pairwise.Gap:
			c[0], c[2] = c[2], swapMarker
		}
		out[r] = c
	}

	return out
}

// windowScore sums the pairwise cell scores of all three columns under
// the swap-aware rules.
func windowScore(win [][3]string, penalty float64, sc score.Scorer) (float64, error) {
	var total float64
	for c := 0; c < 3; c++ {
		for r := 0; r < len(win); r++ {
			for s := r + 1; s < len(win); s++ {
				v, err := swapCellScore(win[r][c], win[s][c], penalty, sc)
				if err != nil {
					return 0, err
				}
				total += v
			}
		}
	}

	return total, nil
}

// swapCellScore scores one cell pair: marker-marker is neutral,
// marker-gap costs the configured penalty, marker-residue is vetoed,
// gap pairs are neutral, residue pairs use the class scorer.
func swapCellScore(x, y string, penalty float64, sc score.Scorer) (float64, error) {
	switch {
	case x == swapMarker && y == swapMarker:
		return 0, nil
	case (x == swapMarker && y == pairwise.Gap) || (y == swapMarker && x == pairwise.Gap):
		return penalty, nil
	case x == swapMarker || y == swapMarker:
		return markerClash, nil
	case x == pairwise.Gap || y == pairwise.Gap:
		return 0, nil
	}

	return sc.Score(x, y)
}

// scaled converts a score to fixed-point micro units for comparison.
func scaled(v float64) int64 { return int64(math.Round(v * 1e6)) }
