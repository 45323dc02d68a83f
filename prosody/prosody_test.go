package prosody_test

import (
	"testing"

	"github.com/katalvlaran/msalign/prosody"
	"github.com/stretchr/testify/assert"
)

// TestTags_SimpleSyllable checks the contour over a CVC-like sonority
// profile: onset, peak, offset.
func TestTags_SimpleSyllable(t *testing.T) {
	// e.g. "t a k": obstruent, vowel, obstruent
	got := prosody.Tags([]int{1, 7, 1})
	want := []prosody.Tag{prosody.Initial, prosody.Peak, prosody.Final}
	assert.Equal(t, want, got)
}

// TestTags_RisingAndFalling checks Ascending/Descending classification
// inside a longer contour.
func TestTags_RisingAndFalling(t *testing.T) {
	// "p l a n t": rising onset cluster, peak, falling coda cluster
	got := prosody.Tags([]int{1, 5, 7, 5, 1})
	want := []prosody.Tag{
		prosody.Initial,
		prosody.Ascending,
		prosody.Peak,
		prosody.Descending,
		prosody.Final,
	}
	assert.Equal(t, want, got)
}

// TestTags_ToneAndBreak checks that tonal and boundary positions leave
// the contour scale and do not distort neighbor comparisons.
func TestTags_ToneAndBreak(t *testing.T) {
	// "m a ⁵⁵ _ p a": tone after the first syllable, then a word break.
	got := prosody.Tags([]int{4, 7, 9, 0, 1, 7})
	want := []prosody.Tag{
		prosody.Initial,
		prosody.Peak, // 7 > 4 on the left, next contour neighbor is 1
		prosody.Tone,
		prosody.Break,
		prosody.Ascending, // rises toward the second syllable's peak
		prosody.Final,
	}
	assert.Equal(t, want, got)
}

// TestTags_AllToneOrBreak verifies the degenerate contour-free input.
func TestTags_AllToneOrBreak(t *testing.T) {
	got := prosody.Tags([]int{9, 0, 8})
	want := []prosody.Tag{prosody.Tone, prosody.Break, prosody.Tone}
	assert.Equal(t, want, got)
}

// TestClose covers equality, one-step contour adjacency, and the
// isolation of Tone and Break.
func TestClose(t *testing.T) {
	assert.True(t, prosody.Close(prosody.Peak, prosody.Peak))
	assert.True(t, prosody.Close(prosody.Ascending, prosody.Peak))
	assert.True(t, prosody.Close(prosody.Peak, prosody.Descending))
	assert.False(t, prosody.Close(prosody.Initial, prosody.Peak), "two ordinal steps apart")
	assert.False(t, prosody.Close(prosody.Tone, prosody.Peak), "tone only close to itself")
	assert.False(t, prosody.Close(prosody.Break, prosody.Final))
	assert.True(t, prosody.Close(prosody.Tone, prosody.Tone))
}

// TestGapWeights verifies the per-tag scaling of the base penalty.
func TestGapWeights(t *testing.T) {
	tags := []prosody.Tag{prosody.Initial, prosody.Peak, prosody.Final}
	got := prosody.GapWeights(tags, -2)

	assert.Len(t, got, 3)
	assert.Equal(t, -2*prosody.Weight(prosody.Initial), got[0])
	assert.Equal(t, -2*prosody.Weight(prosody.Peak), got[1])
	assert.Equal(t, -2*prosody.Weight(prosody.Final), got[2])
	assert.Less(t, got[1], got[2], "peak gaps must cost more than final gaps")
}

// TestConsensus_Primary checks plain column averaging over non-gap cells.
func TestConsensus_Primary(t *testing.T) {
	rows := [][]string{
		{"t", "a", "-"},
		{"d", "a", "k"},
	}
	son := [][]int{
		{1, 7},
		{2, 7, 1},
	}
	cons, degenerate := prosody.Consensus(rows, son, "-")
	assert.Empty(t, degenerate)
	assert.Equal(t, []int{2, 7, 1}, cons, "(1+2)/2 rounds half up to 2")
}

// TestConsensus_ZeroFallback checks the fallback that re-averages
// including zero-valued sonority entries.
func TestConsensus_ZeroFallback(t *testing.T) {
	rows := [][]string{
		{"_"},
		{"_"},
	}
	son := [][]int{
		{0},
		{0},
	}
	cons, degenerate := prosody.Consensus(rows, son, "-")
	assert.Empty(t, degenerate, "zero-valued columns are recovered by the fallback")
	assert.Equal(t, []int{0}, cons)
}

// TestConsensus_Degenerate checks that an all-gap column is reported
// rather than crashing the averaging.
func TestConsensus_Degenerate(t *testing.T) {
	rows := [][]string{
		{"a", "-"},
		{"a", "-"},
	}
	son := [][]int{
		{7},
		{7},
	}
	cons, degenerate := prosody.Consensus(rows, son, "-")
	assert.Equal(t, []int{1}, degenerate, "all-gap column must be flagged")
	assert.Equal(t, []int{7, 0}, cons)
}
