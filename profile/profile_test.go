package profile_test

import (
	"testing"

	"github.com/katalvlaran/msalign/pairwise"
	"github.com/katalvlaran/msalign/profile"
	"github.com/katalvlaran/msalign/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMerge_TwoLeaves merges two single-row profiles and checks gap
// placement, row order and the row-length invariant.
func TestMerge_TwoLeaves(t *testing.T) {
	a := profile.New(0, []string{"a", "b", "c"}, []int{1, 7, 1})
	b := profile.New(1, []string{"a", "c"}, []int{1, 1})

	out, _, err := profile.Merge(a, b, score.NewIdentity(1, -1), profile.DefaultOptions(), pairwise.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, out.Rows, 2)
	assert.Equal(t, []int{0, 1}, out.IDs)
	assert.Equal(t, []string{"a", "b", "c"}, out.Rows[0])
	assert.Equal(t, []string{"a", pairwise.Gap, "c"}, out.Rows[1])
}

// TestAlignPair_Widen verifies that both inputs come back independently
// widened to a common width with their own rows intact.
func TestAlignPair_Widen(t *testing.T) {
	a := profile.Profile{
		IDs:  []int{0, 1},
		Rows: [][]string{{"a", "b"}, {"a", pairwise.Gap}},
		Son:  [][]int{{1, 7}, {1}},
	}
	b := profile.New(2, []string{"b"}, []int{7})

	wa, wb, _, err := profile.AlignPair(a, b, score.NewIdentity(1, -1), profile.DefaultOptions(), pairwise.DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, wa.Width(), wb.Width(), "widened profiles must be commensurable")
	assert.Equal(t, [][]string{{"a", "b"}, {"a", pairwise.Gap}}, wa.Rows, "a needed no new columns")
	assert.Equal(t, [][]string{{pairwise.Gap, "b"}}, wb.Rows, "b gets a leading gap column")
	assert.Equal(t, []int{2}, wb.IDs)
}

// TestAlignPair_NoStructure verifies that a missing sonority block on
// one side disables structural biasing without erroring.
func TestAlignPair_NoStructure(t *testing.T) {
	a := profile.New(0, []string{"a", "b"}, nil)
	b := profile.New(1, []string{"a", "b"}, []int{1, 7})

	wa, wb, best, err := profile.AlignPair(a, b, score.NewIdentity(1, -1), profile.DefaultOptions(), pairwise.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, wa.Width())
	assert.Equal(t, 2, wb.Width())
	assert.Equal(t, 2.0, best, "two identity matches, no bonus without structure")
}

// TestAlignPair_Validation covers the profile-shape sentinels.
func TestAlignPair_Validation(t *testing.T) {
	id := score.NewIdentity(1, -1)
	good := profile.New(0, []string{"a"}, nil)

	_, _, _, err := profile.AlignPair(profile.Profile{}, good, id, profile.DefaultOptions(), pairwise.DefaultOptions())
	assert.ErrorIs(t, err, profile.ErrEmptyProfile)

	ragged := profile.Profile{IDs: []int{0, 1}, Rows: [][]string{{"a", "b"}, {"a"}}}
	_, _, _, err = profile.AlignPair(ragged, good, id, profile.DefaultOptions(), pairwise.DefaultOptions())
	assert.ErrorIs(t, err, profile.ErrRaggedProfile)

	badSon := profile.Profile{IDs: []int{0}, Rows: [][]string{{"a", pairwise.Gap}}, Son: [][]int{{1, 7}}}
	_, _, _, err = profile.AlignPair(badSon, good, id, profile.DefaultOptions(), pairwise.DefaultOptions())
	assert.ErrorIs(t, err, profile.ErrSonorityMismatch)

	opts := profile.DefaultOptions()
	opts.GapWeight = -1
	_, _, _, err = profile.AlignPair(good, good, id, opts, pairwise.DefaultOptions())
	assert.ErrorIs(t, err, profile.ErrBadGapWeight)
}

// TestMerge_ScorerMissPropagates verifies that a strict scorer miss in
// the column scoring aborts the merge.
func TestMerge_ScorerMissPropagates(t *testing.T) {
	m := score.NewMapScorer()
	m.Set("a", "a", 1)

	a := profile.New(0, []string{"a"}, nil)
	b := profile.New(1, []string{"x"}, nil)

	_, _, err := profile.Merge(a, b, m, profile.DefaultOptions(), pairwise.DefaultOptions())
	assert.ErrorIs(t, err, score.ErrScoreMissing)
}
