package pairwise

import (
	"fmt"

	"github.com/katalvlaran/msalign/prosody"
	"github.com/katalvlaran/msalign/score"
)

// Align computes one optimal alignment of two token sequences under the
// configured mode and returns the full-length gap-interspersed rows.
//
// Contracts:
//   - sc must be total over all token pairs of a and b; the scores are
//     prefetched before the DP, so a table miss surfaces here as an
//     error and never corrupts a partial matrix.
//   - Empty sequences are valid degenerate input: the result is all
//     gaps on one side with score 0.
//   - In Local mode the unaligned prefixes and suffixes are folded into
//     the full-length rows (each paired against gaps); use AlignLocal
//     for the three-segment form.
//
// Complexity: O(n*m) time and space for global/local/overlap;
// O(n*m*min(n,m)) time for dialign.
func Align(a, b Sequence, sc score.Scorer, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	if err := checkSequence(a); err != nil {
		return Result{}, err
	}
	if err := checkSequence(b); err != nil {
		return Result{}, err
	}

	sim, err := prefetch(a.Tokens, b.Tokens, sc)
	if err != nil {
		return Result{}, err
	}

	alnA, alnB, s, err := AlignMatrix(sim, seqWeights(a, opts), seqWeights(b, opts), a.Tags, b.Tags, opts)
	if err != nil {
		return Result{}, err
	}

	return Result{
		A:     mapTokens(alnA, a.Tokens),
		B:     mapTokens(alnB, b.Tokens),
		Score: s,
	}, nil
}

// AlignLocal computes a Smith-Waterman-style local alignment and
// returns it in three segments per sequence: unaligned prefix, aligned
// core, unaligned suffix. opts.Mode is ignored; the local recurrence
// always runs.
func AlignLocal(a, b Sequence, sc score.Scorer, opts Options) (LocalResult, error) {
	opts.Mode = Local
	if err := opts.validate(); err != nil {
		return LocalResult{}, err
	}
	if err := checkSequence(a); err != nil {
		return LocalResult{}, err
	}
	if err := checkSequence(b); err != nil {
		return LocalResult{}, err
	}

	sim, err := prefetch(a.Tokens, b.Tokens, sc)
	if err != nil {
		return LocalResult{}, err
	}
	wa, wb := seqWeights(a, opts), seqWeights(b, opts)
	applyStructure(sim, a.Tags, b.Tags, opts)

	alnA, alnB, startA, endA, startB, endB, s := localCore(sim, wa, wb, opts.Scale)

	return LocalResult{
		PrefixA: cloneTokens(a.Tokens[:startA]),
		CoreA:   mapTokens(alnA, a.Tokens),
		SuffixA: cloneTokens(a.Tokens[endA:]),
		PrefixB: cloneTokens(b.Tokens[:startB]),
		CoreB:   mapTokens(alnB, b.Tokens),
		SuffixB: cloneTokens(b.Tokens[endB:]),
		Score:   s,
	}, nil
}

// AlignMatrix is the matrix-direct entry point used by profile
// alignment: the caller supplies an already-built score matrix (sim is
// n rows by m columns) together with per-position gap weights and
// optional structural tags. The returned index alignments hold -1 for
// gap cells.
//
// The input matrix is not mutated; structure adjustments are applied to
// an internal copy.
func AlignMatrix(sim [][]float64, wa, wb []float64, ta, tb []prosody.Tag, opts Options) (alnA, alnB []int, best float64, err error) {
	if err = opts.validate(); err != nil {
		return nil, nil, 0, err
	}
	n, m := len(wa), len(wb)
	if len(sim) != n {
		return nil, nil, 0, ErrBadMatrix
	}
	for _, row := range sim {
		if len(row) != m {
			return nil, nil, 0, ErrBadMatrix
		}
	}
	if (ta != nil && len(ta) != n) || (tb != nil && len(tb) != m) {
		return nil, nil, 0, ErrLengthMismatch
	}

	// Degenerate but valid: one side empty aligns all-gaps.
	if n == 0 || m == 0 {
		alnA, alnB = emptyAlignment(n, m)

		return alnA, alnB, 0, nil
	}

	work := make([][]float64, n)
	for i := range sim {
		work[i] = append([]float64(nil), sim[i]...)
	}
	applyStructure(work, ta, tb, opts)

	switch opts.Mode {
	case Global:
		alnA, alnB, best = globalCore(work, wa, wb, opts.Scale)
	case Overlap:
		alnA, alnB, best = overlapCore(work, wa, wb, opts.Scale)
	case Dialign:
		alnA, alnB, best = dialignCore(work, n, m)
	case Local:
		var coreA, coreB []int
		var startA, endA, startB, endB int
		coreA, coreB, startA, endA, startB, endB, best = localCore(work, wa, wb, opts.Scale)
		alnA, alnB = foldLocal(coreA, coreB, startA, endA, startB, endB, n, m)
	default:
		return nil, nil, 0, ErrUnknownMode
	}

	return alnA, alnB, best, nil
}

// SelfScore returns the similarity of a sequence aligned against
// itself: the sum of each token's self-score, with the full structural
// bonus applied when tags are present (a position's tag always equals
// itself).
func SelfScore(a Sequence, sc score.Scorer, opts Options) (float64, error) {
	if err := checkSequence(a); err != nil {
		return 0, err
	}
	var sum float64
	for _, tok := range a.Tokens {
		v, err := sc.Score(tok, tok)
		if err != nil {
			return 0, fmt.Errorf("pairwise: self-score: %w", err)
		}
		if a.Tags != nil {
			v += v * opts.Factor
		}
		sum += v
	}

	return sum, nil
}

// prefetch builds the dense n x m score matrix for two token slices.
// Every lookup is validated here so the DP loops stay error-free.
func prefetch(a, b []string, sc score.Scorer) ([][]float64, error) {
	sim := make([][]float64, len(a))
	for i := range a {
		sim[i] = make([]float64, len(b))
		for j := range b {
			v, err := sc.Score(a[i], b[j])
			if err != nil {
				return nil, fmt.Errorf("pairwise: prefetch: %w", err)
			}
			sim[i][j] = v
		}
	}

	return sim, nil
}

// applyStructure folds the structural bonus and the restricted-position
// rule into the score matrix. Nil tags on either side disable both.
func applyStructure(sim [][]float64, ta, tb []prosody.Tag, opts Options) {
	if ta == nil || tb == nil {
		return
	}
	restricted := make(map[prosody.Tag]bool, len(opts.Restricted))
	for _, t := range opts.Restricted {
		restricted[t] = true
	}

	for i := range sim {
		for j := range sim[i] {
			if restricted[ta[i]] != restricted[tb[j]] {
				// Restricted positions align only to gaps or each other.
				sim[i][j] = restrictedPenalty
				continue
			}
			switch {
			case ta[i] == tb[j]:
				sim[i][j] += sim[i][j] * opts.Factor
			case prosody.Close(ta[i], tb[j]):
				sim[i][j] += sim[i][j] * opts.Factor / 2
			}
		}
	}
}

// seqWeights returns the per-position gap weights of s, defaulting to
// the uniform Options.GapOpen when none were supplied.
func seqWeights(s Sequence, opts Options) []float64 {
	if s.Weights != nil {
		return s.Weights
	}
	w := make([]float64, len(s.Tokens))
	for i := range w {
		w[i] = opts.GapOpen
	}

	return w
}

// checkSequence enforces the Sequence length contracts.
func checkSequence(s Sequence) error {
	if s.Weights != nil && len(s.Weights) != len(s.Tokens) {
		return ErrLengthMismatch
	}
	if s.Tags != nil && len(s.Tags) != len(s.Tokens) {
		return ErrLengthMismatch
	}

	return nil
}

// emptyAlignment builds the all-gap alignment for one empty side.
func emptyAlignment(n, m int) (alnA, alnB []int) {
	switch {
	case n == 0 && m == 0:
		return nil, nil
	case n == 0:
		alnA = make([]int, m)
		alnB = make([]int, m)
		for j := 0; j < m; j++ {
			alnA[j] = -1
			alnB[j] = j
		}
	default:
		alnA = make([]int, n)
		alnB = make([]int, n)
		for i := 0; i < n; i++ {
			alnA[i] = i
			alnB[i] = -1
		}
	}

	return alnA, alnB
}

// foldLocal expands a local core plus spans into a full-length index
// alignment: prefixes and suffixes pair against gaps.
func foldLocal(coreA, coreB []int, startA, endA, startB, endB, n, m int) (alnA, alnB []int) {
	for i := 0; i < startA; i++ {
		alnA = append(alnA, i)
		alnB = append(alnB, -1)
	}
	for j := 0; j < startB; j++ {
		alnA = append(alnA, -1)
		alnB = append(alnB, j)
	}
	alnA = append(alnA, coreA...)
	alnB = append(alnB, coreB...)
	for i := endA; i < n; i++ {
		alnA = append(alnA, i)
		alnB = append(alnB, -1)
	}
	for j := endB; j < m; j++ {
		alnA = append(alnA, -1)
		alnB = append(alnB, j)
	}

	return alnA, alnB
}

// mapTokens renders an index alignment as tokens with Gap markers.
func mapTokens(aln []int, tokens []string) []string {
	out := make([]string, len(aln))
	for k, idx := range aln {
		if idx < 0 {
			out[k] = Gap
		} else {
			out[k] = tokens[idx]
		}
	}

	return out
}

// cloneTokens copies a token slice so results never alias caller data.
func cloneTokens(s []string) []string {
	return append([]string(nil), s...)
}
