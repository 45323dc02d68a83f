package profile

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/msalign/pairwise"
	"github.com/katalvlaran/msalign/prosody"
	"github.com/katalvlaran/msalign/score"
)

// AlignPair aligns two profiles and returns both inputs independently
// widened with the gap columns needed to make them commensurable (the
// rows are NOT concatenated; use Merge for that).
//
// Algorithm: each profile is collapsed to a pseudo-sequence whose
// symbols are column indices; the score of column i against column j is
// the gap-weighted average score over all cross pairs of cells; the
// consensus sonority of each profile supplies structural tags and
// per-column gap weights; the pseudo-sequences then run through the
// pairwise aligner, and its gap insertions are mapped back into both
// blocks as all-gap columns.
//
// Complexity: O(Wa*Wb*Ra*Rb) for the column score matrix plus the
// pairwise DP over Wa x Wb columns.
func AlignPair(a, b Profile, sc score.Scorer, popts Options, aopts pairwise.Options) (wa, wb Profile, best float64, err error) {
	if err = popts.validate(); err != nil {
		return Profile{}, Profile{}, 0, err
	}
	if err = a.validate(pairwise.Gap); err != nil {
		return Profile{}, Profile{}, 0, err
	}
	if err = b.validate(pairwise.Gap); err != nil {
		return Profile{}, Profile{}, 0, err
	}

	sim, err := columnScores(a, b, sc, popts.GapWeight)
	if err != nil {
		return Profile{}, Profile{}, 0, err
	}

	// Structure is enabled only when both profiles carry sonority.
	var (
		tagsA, tagsB []prosody.Tag
		wVecA, wVecB []float64
	)
	if a.Son != nil && b.Son != nil {
		tagsA, wVecA = structure(a, popts, aopts)
		tagsB, wVecB = structure(b, popts, aopts)
	} else {
		wVecA = uniformWeights(a.Width(), aopts.GapOpen)
		wVecB = uniformWeights(b.Width(), aopts.GapOpen)
	}

	alnA, alnB, best, err := pairwise.AlignMatrix(sim, wVecA, wVecB, tagsA, tagsB, aopts)
	if err != nil {
		return Profile{}, Profile{}, 0, err
	}

	return widen(a, alnA), widen(b, alnB), best, nil
}

// Merge aligns two profiles and concatenates the widened rows into one
// block, preserving row order (a's rows first).
func Merge(a, b Profile, sc score.Scorer, popts Options, aopts pairwise.Options) (Profile, float64, error) {
	wa, wb, best, err := AlignPair(a, b, sc, popts, aopts)
	if err != nil {
		return Profile{}, 0, err
	}

	out := Profile{
		IDs:  append(append([]int(nil), wa.IDs...), wb.IDs...),
		Rows: append(append([][]string(nil), wa.Rows...), wb.Rows...),
	}
	if wa.Son != nil && wb.Son != nil {
		out.Son = append(append([][]int(nil), wa.Son...), wb.Son...)
	}

	return out, best, nil
}

// structure derives the consensus tags and gap-weight vector of one
// profile; degenerate columns are recovered per the consensus fallback
// chain and surfaced as a warning diagnostic rather than an error.
func structure(p Profile, popts Options, aopts pairwise.Options) ([]prosody.Tag, []float64) {
	cons, degenerate := prosody.Consensus(p.Rows, p.Son, pairwise.Gap)
	if len(degenerate) > 0 {
		popts.Logger.Warn("profile: degenerate consensus columns",
			zap.Ints("columns", degenerate),
			zap.Int("width", p.Width()),
		)
	}
	tags := prosody.Tags(cons)

	return tags, prosody.GapWeights(tags, aopts.GapOpen)
}

// columnScores builds the column-vs-column score matrix: the
// gap-weighted average pairwise score of all non-gap cross pairs, where
// a pair touching a gap contributes gapWeight to the denominator and
// nothing to the numerator.
func columnScores(a, b Profile, sc score.Scorer, gapWeight float64) ([][]float64, error) {
	sim := make([][]float64, a.Width())
	for i := range sim {
		sim[i] = make([]float64, b.Width())
		for j := range sim[i] {
			var num, den float64
			for r := range a.Rows {
				for s := range b.Rows {
					x, y := a.Rows[r][i], b.Rows[s][j]
					if x == pairwise.Gap || y == pairwise.Gap {
						den += gapWeight
						continue
					}
					v, err := sc.Score(x, y)
					if err != nil {
						return nil, err
					}
					num += v
					den++
				}
			}
			if den != 0 {
				sim[i][j] = num / den
			}
		}
	}

	return sim, nil
}

// widen inserts an all-gap column into p wherever the pseudo-sequence
// alignment placed a gap, keeping every row the same (new) length.
func widen(p Profile, aln []int) Profile {
	out := Profile{
		IDs:  append([]int(nil), p.IDs...),
		Rows: make([][]string, len(p.Rows)),
	}
	if p.Son != nil {
		out.Son = make([][]int, len(p.Son))
		for r := range p.Son {
			out.Son[r] = append([]int(nil), p.Son[r]...)
		}
	}
	for r := range p.Rows {
		row := make([]string, len(aln))
		for k, col := range aln {
			if col < 0 {
				row[k] = pairwise.Gap
			} else {
				row[k] = p.Rows[r][col]
			}
		}
		out.Rows[r] = row
	}

	return out
}

// uniformWeights fills a gap-weight vector with the base penalty.
func uniformWeights(n int, gapOpen float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = gapOpen
	}

	return w
}
