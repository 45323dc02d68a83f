package msa

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/msalign/guidetree"
	"github.com/katalvlaran/msalign/pairwise"
	"github.com/katalvlaran/msalign/profile"
)

// Iterative refinement: partition the uniques, split the alignment
// along each partition, re-align part against rest as two profiles, and
// keep the result only when the sum-of-pairs objective does not drop.
// All four strategies share one engine and differ only in how they
// propose partitions.

// IterateOrphans re-aligns the divergent sequences: every unique whose
// average distance to the rest exceeds the overall mean gets split out
// on its own.
func (m *Multiple) IterateOrphans(check Check) error {
	if !m.aligned {
		return ErrNotAligned
	}
	nU := len(m.reps)
	if nU < 2 {
		return m.iterate(nil, check)
	}

	rowAvg := make([]float64, nU)
	var mean float64
	for u := 0; u < nU; u++ {
		var sum float64
		for v := 0; v < nU; v++ {
			if v != u {
				sum += m.dist[u][v]
			}
		}
		rowAvg[u] = sum / float64(nU-1)
		mean += rowAvg[u]
	}
	mean /= float64(nU)

	var parts [][]int
	for u := 0; u < nU; u++ {
		if rowAvg[u] > mean {
			parts = append(parts, []int{u})
		}
	}

	return m.iterate(parts, check)
}

// IterateClusters re-aligns threshold clusters: the uniques are
// partitioned by flat average-linkage clustering of the distance matrix
// and every proper cluster is split out in turn.
func (m *Multiple) IterateClusters(threshold float64, check Check) error {
	if !m.aligned {
		return ErrNotAligned
	}

	groups, err := guidetree.Flat(m.dist, threshold, guidetree.LinkageAverage)
	if err != nil {
		return err
	}

	nU := len(m.reps)
	parts := make([][]int, 0, len(groups))
	for _, g := range groups {
		if len(g) < nU {
			parts = append(parts, g)
		}
	}

	return m.iterate(parts, check)
}

// IterateSimilarGapSites re-aligns rows that share a gap profile: the
// uniques are grouped by the exact gap/residue pattern of their current
// row, so rows gapped in the same columns move together.
func (m *Multiple) IterateSimilarGapSites(check Check) error {
	if !m.aligned {
		return ErrNotAligned
	}

	seen := make(map[string]int)
	var groups [][]int
	for u, row := range m.alnU {
		pat := make([]byte, len(row))
		for c, cell := range row {
			if cell == pairwise.Gap {
				pat[c] = '1'
			} else {
				pat[c] = '0'
			}
		}
		key := string(pat)
		g, ok := seen[key]
		if !ok {
			g = len(groups)
			seen[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], u)
	}

	nU := len(m.reps)
	parts := make([][]int, 0, len(groups))
	for _, g := range groups {
		if len(g) < nU {
			parts = append(parts, g)
		}
	}

	return m.iterate(parts, check)
}

// IterateAllSequences re-aligns every unique in turn against the rest.
func (m *Multiple) IterateAllSequences(check Check) error {
	if !m.aligned {
		return ErrNotAligned
	}
	nU := len(m.reps)
	if nU < 2 {
		return m.iterate(nil, check)
	}

	parts := make([][]int, nU)
	for u := 0; u < nU; u++ {
		parts[u] = []int{u}
	}

	return m.iterate(parts, check)
}

// iterate runs the split-realign-check engine over a partition list.
//
// CheckImmediate measures the objective after every step and rolls that
// step back on a strict drop; CheckFinal applies the whole batch first
// and rolls everything back if the batch as a whole lost ground. Either
// way the published objective never decreases across a call.
func (m *Multiple) iterate(parts [][]int, check Check) error {
	if !m.aligned {
		return ErrNotAligned
	}
	if !check.valid() {
		return ErrBadCheck
	}
	if len(parts) == 0 {
		return nil
	}

	gw := m.opts.GapWeight
	pre, err := sumOfPairs(m.alnU, m.scorer, gw)
	if err != nil {
		return err
	}
	batch := cloneRows(m.alnU)

	for _, part := range parts {
		step := cloneRows(m.alnU)
		if err := m.realign(part); err != nil {
			m.alnU = step
			return err
		}
		if check != CheckImmediate {
			continue
		}
		post, err := sumOfPairs(m.alnU, m.scorer, gw)
		if err != nil {
			m.alnU = step
			return err
		}
		if post < pre {
			m.alnU = step
		} else {
			pre = post
		}
	}

	if check == CheckFinal {
		post, err := sumOfPairs(m.alnU, m.scorer, gw)
		if err != nil {
			m.alnU = batch
			return err
		}
		if post < pre {
			m.alnU = batch
		}
	}

	m.publish(m.alnU)
	m.logger.Debug("msa: refinement pass finished",
		zap.Int("partitions", len(parts)),
		zap.Int("columns", width(m.alnU)),
	)

	return nil
}

// realign splits the alignment into part and rest, compacts each half
// by dropping its all-gap columns, re-aligns the halves as profiles and
// reassembles the rows by unique id. A partition covering everything
// (or nothing) is a no-op.
func (m *Multiple) realign(part []int) error {
	nU := len(m.alnU)
	inPart := make([]bool, nU)
	for _, u := range part {
		inPart[u] = true
	}
	rest := make([]int, 0, nU-len(part))
	for u := 0; u < nU; u++ {
		if !inPart[u] {
			rest = append(rest, u)
		}
	}
	if len(part) == 0 || len(rest) == 0 {
		return nil
	}

	popts := profile.Options{GapWeight: m.opts.GapWeight, Logger: m.logger}
	wa, wb, _, err := profile.AlignPair(
		m.subProfile(part),
		m.subProfile(rest),
		m.scorer,
		popts,
		m.opts.pairwiseOptions(),
	)
	if err != nil {
		return err
	}

	next := make([][]string, nU)
	for k, u := range wa.IDs {
		next[u] = wa.Rows[k]
	}
	for k, u := range wb.IDs {
		next[u] = wb.Rows[k]
	}
	m.alnU = next

	return nil
}

// subProfile extracts the current rows of the given uniques, dropping
// the columns that are all-gap within the subset. Stripping only whole
// gap columns keeps each row's residue count, so the original sonority
// contours still fit.
func (m *Multiple) subProfile(ids []int) profile.Profile {
	w := width(m.alnU)
	keep := make([]int, 0, w)
	for c := 0; c < w; c++ {
		allGap := true
		for _, u := range ids {
			if m.alnU[u][c] != pairwise.Gap {
				allGap = false
				break
			}
		}
		if !allGap {
			keep = append(keep, c)
		}
	}

	rows := make([][]string, len(ids))
	for r, u := range ids {
		row := make([]string, len(keep))
		for k, c := range keep {
			row[k] = m.alnU[u][c]
		}
		rows[r] = row
	}

	p := profile.Profile{IDs: append([]int(nil), ids...), Rows: rows}
	if m.son != nil {
		p.Son = make([][]int, len(ids))
		for r, u := range ids {
			p.Son[r] = append([]int(nil), m.sonU(u)...)
		}
	}

	return p
}
