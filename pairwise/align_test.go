package pairwise_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/msalign/pairwise"
	"github.com/katalvlaran/msalign/prosody"
	"github.com/katalvlaran/msalign/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokens splits a compact string into single-character tokens.
func tokens(s string) []string {
	return strings.Split(s, "")
}

// stripGaps removes gap markers from an aligned row.
func stripGaps(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		if c != pairwise.Gap {
			out = append(out, c)
		}
	}

	return out
}

// TestAlign_UnknownMode verifies the configuration-error sentinel.
func TestAlign_UnknownMode(t *testing.T) {
	opts := pairwise.DefaultOptions()
	opts.Mode = pairwise.Mode(99)

	_, err := pairwise.Align(
		pairwise.Sequence{Tokens: tokens("ab")},
		pairwise.Sequence{Tokens: tokens("ab")},
		score.NewIdentity(1, -1),
		opts,
	)
	assert.ErrorIs(t, err, pairwise.ErrUnknownMode)
}

// TestAlign_BadOptions covers the numeric option contracts.
func TestAlign_BadOptions(t *testing.T) {
	id := score.NewIdentity(1, -1)
	a := pairwise.Sequence{Tokens: tokens("a")}

	opts := pairwise.DefaultOptions()
	opts.GapOpen = 1
	_, err := pairwise.Align(a, a, id, opts)
	assert.ErrorIs(t, err, pairwise.ErrBadGapOpen)

	opts = pairwise.DefaultOptions()
	opts.Scale = 1.5
	_, err = pairwise.Align(a, a, id, opts)
	assert.ErrorIs(t, err, pairwise.ErrBadScale)

	opts = pairwise.DefaultOptions()
	opts.Factor = -0.1
	_, err = pairwise.Align(a, a, id, opts)
	assert.ErrorIs(t, err, pairwise.ErrBadFactor)
}

// TestAlign_ScorerMiss verifies that a missing table entry fails the
// whole call during prefetch.
func TestAlign_ScorerMiss(t *testing.T) {
	m := score.NewMapScorer()
	m.Set("a", "a", 1)
	// "a"/"b" is never set.

	_, err := pairwise.Align(
		pairwise.Sequence{Tokens: tokens("a")},
		pairwise.Sequence{Tokens: tokens("b")},
		m,
		pairwise.DefaultOptions(),
	)
	assert.ErrorIs(t, err, score.ErrScoreMissing)
}

// TestAlign_IdenticalSequences verifies that aligning a sequence with
// itself yields the sum of self-match scores and distance zero, under
// every mode.
func TestAlign_IdenticalSequences(t *testing.T) {
	id := score.NewIdentity(1, -1)
	seq := pairwise.Sequence{Tokens: tokens("abab")}

	for _, mode := range []pairwise.Mode{pairwise.Global, pairwise.Overlap, pairwise.Dialign} {
		opts := pairwise.DefaultOptions()
		opts.Mode = mode

		res, err := pairwise.Align(seq, seq, id, opts)
		require.NoError(t, err, "mode %v", mode)
		assert.Equal(t, 4.0, res.Score, "mode %v: four self-matches", mode)

		self, err := pairwise.SelfScore(seq, id, opts)
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.Distance(self, self), "mode %v: self-distance is zero", mode)
		assert.Equal(t, tokens("abab"), res.A)
		assert.Equal(t, tokens("abab"), res.B)
	}
}

// TestAlign_TokenPreservation verifies that removing gaps from each
// aligned row reproduces the original tokens, in order.
func TestAlign_TokenPreservation(t *testing.T) {
	id := score.NewIdentity(1, -1)
	a := pairwise.Sequence{Tokens: tokens("woldemort")}
	b := pairwise.Sequence{Tokens: tokens("waldemar")}

	for _, mode := range []pairwise.Mode{pairwise.Global, pairwise.Overlap, pairwise.Dialign, pairwise.Local} {
		opts := pairwise.DefaultOptions()
		opts.Mode = mode

		res, err := pairwise.Align(a, b, id, opts)
		require.NoError(t, err, "mode %v", mode)
		require.Equal(t, len(res.A), len(res.B), "mode %v: rows must be commensurable", mode)
		assert.Equal(t, a.Tokens, stripGaps(res.A), "mode %v", mode)
		assert.Equal(t, b.Tokens, stripGaps(res.B), "mode %v", mode)
	}
}

// TestAlign_EmptySide verifies the degenerate all-gap alignment.
func TestAlign_EmptySide(t *testing.T) {
	id := score.NewIdentity(1, -1)

	res, err := pairwise.Align(
		pairwise.Sequence{},
		pairwise.Sequence{Tokens: tokens("ab")},
		id,
		pairwise.DefaultOptions(),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{pairwise.Gap, pairwise.Gap}, res.A)
	assert.Equal(t, tokens("ab"), res.B)
	assert.Equal(t, 0.0, res.Score)
}

// TestAlign_GapExtensionScaling verifies the traceback-conditioned gap
// model: the second consecutive gap in the same direction pays the
// scaled cost.
func TestAlign_GapExtensionScaling(t *testing.T) {
	id := score.NewIdentity(1, -1)
	opts := pairwise.DefaultOptions() // GapOpen -2, Scale 0.5

	res, err := pairwise.Align(
		pairwise.Sequence{Tokens: tokens("abc")},
		pairwise.Sequence{Tokens: tokens("a")},
		id,
		opts,
	)
	require.NoError(t, err)
	// match(+1) + gap open(-2) + gap extension(-2*0.5) = -2
	assert.Equal(t, -2.0, res.Score)
	assert.Equal(t, tokens("abc"), res.A)
	assert.Equal(t, []string{"a", pairwise.Gap, pairwise.Gap}, res.B)
}

// TestAlign_OverlapFreeEdges verifies that a contained sequence aligns
// without edge penalties under overlap mode.
func TestAlign_OverlapFreeEdges(t *testing.T) {
	id := score.NewIdentity(1, -1)
	opts := pairwise.DefaultOptions()
	opts.Mode = pairwise.Overlap

	res, err := pairwise.Align(
		pairwise.Sequence{Tokens: tokens("bcd")},
		pairwise.Sequence{Tokens: tokens("abcde")},
		id,
		opts,
	)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Score, "three matches, edge gaps free")
	assert.Equal(t, []string{pairwise.Gap, "b", "c", "d", pairwise.Gap}, res.A)
	assert.Equal(t, tokens("abcde"), res.B)
}

// TestAlignLocal_ThreeSegments runs the local aligner on "abab" vs
// "bababa" and checks the three-part contract: concatenating the
// non-gap tokens across prefix, core and suffix reproduces each
// original sequence.
func TestAlignLocal_ThreeSegments(t *testing.T) {
	id := score.NewIdentity(1, -1)

	res, err := pairwise.AlignLocal(
		pairwise.Sequence{Tokens: tokens("abab")},
		pairwise.Sequence{Tokens: tokens("bababa")},
		id,
		pairwise.DefaultOptions(),
	)
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.Score, "abab sits inside bababa")

	var recA []string
	recA = append(recA, res.PrefixA...)
	recA = append(recA, stripGaps(res.CoreA)...)
	recA = append(recA, res.SuffixA...)
	assert.Equal(t, tokens("abab"), recA)

	var recB []string
	recB = append(recB, res.PrefixB...)
	recB = append(recB, stripGaps(res.CoreB)...)
	recB = append(recB, res.SuffixB...)
	assert.Equal(t, tokens("bababa"), recB)
}

// TestAlignLocal_AllNegative verifies the empty-core degenerate case.
func TestAlignLocal_AllNegative(t *testing.T) {
	id := score.NewIdentity(1, -1)

	res, err := pairwise.AlignLocal(
		pairwise.Sequence{Tokens: tokens("ab")},
		pairwise.Sequence{Tokens: tokens("cd")},
		id,
		pairwise.DefaultOptions(),
	)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.CoreA, "no positive-scoring segment exists")
	assert.Equal(t, tokens("ab"), res.SuffixA, "everything falls into the suffix")
}

// TestAlign_StructuralBonus verifies the factor bonus for equal and
// close tags.
func TestAlign_StructuralBonus(t *testing.T) {
	id := score.NewIdentity(1, -1)
	opts := pairwise.DefaultOptions() // Factor 0.3

	// Equal tags: full bonus.
	res, err := pairwise.Align(
		pairwise.Sequence{Tokens: []string{"a"}, Tags: []prosody.Tag{prosody.Peak}},
		pairwise.Sequence{Tokens: []string{"a"}, Tags: []prosody.Tag{prosody.Peak}},
		id,
		opts,
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.3, res.Score, 1e-12)

	// Close tags: half bonus.
	res, err = pairwise.Align(
		pairwise.Sequence{Tokens: []string{"a"}, Tags: []prosody.Tag{prosody.Peak}},
		pairwise.Sequence{Tokens: []string{"a"}, Tags: []prosody.Tag{prosody.Ascending}},
		id,
		opts,
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.15, res.Score, 1e-12)
}

// TestAlign_RestrictedPositions verifies that a restricted position
// (tone) never aligns against an unrestricted one.
func TestAlign_RestrictedPositions(t *testing.T) {
	id := score.NewIdentity(1, -1)
	opts := pairwise.DefaultOptions()

	res, err := pairwise.Align(
		pairwise.Sequence{Tokens: []string{"5"}, Tags: []prosody.Tag{prosody.Tone}},
		pairwise.Sequence{Tokens: []string{"a"}, Tags: []prosody.Tag{prosody.Peak}},
		id,
		opts,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{pairwise.Gap, "5"}, res.A, "tone must pair with a gap")
	assert.Equal(t, []string{"a", pairwise.Gap}, res.B)
}

// TestAlignMatrix_ShapeValidation verifies the ragged-matrix sentinel.
func TestAlignMatrix_ShapeValidation(t *testing.T) {
	_, _, _, err := pairwise.AlignMatrix(
		[][]float64{{1, 2}, {3}},
		[]float64{-2, -2},
		[]float64{-2, -2},
		nil, nil,
		pairwise.DefaultOptions(),
	)
	assert.ErrorIs(t, err, pairwise.ErrBadMatrix)
}

// TestAlign_WeightLengthMismatch verifies the Sequence contract checks.
func TestAlign_WeightLengthMismatch(t *testing.T) {
	id := score.NewIdentity(1, -1)

	_, err := pairwise.Align(
		pairwise.Sequence{Tokens: tokens("ab"), Weights: []float64{-2}},
		pairwise.Sequence{Tokens: tokens("ab")},
		id,
		pairwise.DefaultOptions(),
	)
	assert.ErrorIs(t, err, pairwise.ErrLengthMismatch)
}
