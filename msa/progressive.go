package msa

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/msalign/guidetree"
	"github.com/katalvlaran/msalign/profile"
	"github.com/katalvlaran/msalign/score"
)

// ProgAlign runs the progressive pipeline: all-pairs distances over the
// uniques, a guide tree, and bottom-up profile merging along it. The
// result is published as the session alignment.
//
// Calling it again with different options recomputes everything and
// replaces the published alignment; any previous swap index is cleared.
func (m *Multiple) ProgAlign(o AlignOptions) error {
	m.opts = o
	m.swaps = nil

	if err := m.computeDistances(o); err != nil {
		return err
	}

	rows, err := m.mergeTree(o, m.scorer, func(u int) []string {
		return m.classes[m.reps[u]]
	})
	if err != nil {
		return err
	}
	m.publish(rows)

	m.logger.Info("msa: progressive alignment published",
		zap.Int("uniques", len(m.reps)),
		zap.Int("columns", width(rows)),
	)

	return nil
}

// mergeTree builds the guide tree from the current distance matrix and
// folds the leaf profiles up along it, returning the final block's rows
// indexed by unique id. leafTokens supplies the leaf row of each unique
// (class tokens for the progressive pipeline, position tokens for the
// library pipeline); sc must be total over the token alphabet in use.
//
// Tree records refer to clusters by creation order, so profiles are
// appended in that same order and looked up by id directly.
func (m *Multiple) mergeTree(o AlignOptions, sc score.Scorer, leafTokens func(u int) []string) ([][]string, error) {
	nU := len(m.reps)
	if nU == 1 {
		return [][]string{append([]string(nil), leafTokens(0)...)}, nil
	}

	tree, err := guidetree.Build(m.dist, o.Method)
	if err != nil {
		return nil, err
	}

	popts := profile.Options{GapWeight: o.GapWeight, Logger: m.logger}
	aopts := o.pairwiseOptions()

	profiles := make([]profile.Profile, nU, nU+len(tree))
	for u := 0; u < nU; u++ {
		profiles[u] = profile.New(u, leafTokens(u), m.sonU(u))
	}
	for _, rec := range tree {
		merged, _, err := profile.Merge(profiles[rec.Left], profiles[rec.Right], sc, popts, aopts)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, merged)
	}

	final := profiles[len(profiles)-1]
	rows := make([][]string, nU)
	for k, id := range final.IDs {
		rows[id] = final.Rows[k]
	}

	return rows, nil
}

// width returns the column count of a rectangular row set.
func width(rows [][]string) int {
	if len(rows) == 0 {
		return 0
	}

	return len(rows[0])
}
