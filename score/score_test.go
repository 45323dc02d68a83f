package score_test

import (
	"testing"

	"github.com/katalvlaran/msalign/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMapScorer_Symmetry verifies that a pair stored in one direction is
// retrievable in both directions with the same value.
func TestMapScorer_Symmetry(t *testing.T) {
	m := score.NewMapScorer()
	m.Set("a", "b", 2.5)
	m.Set("c", "c", 5)

	ab, err := m.Score("a", "b")
	require.NoError(t, err)
	ba, err := m.Score("b", "a")
	require.NoError(t, err)
	assert.Equal(t, ab, ba, "stored pair must score symmetrically")
	assert.Equal(t, 2.5, ab)

	cc, err := m.Score("c", "c")
	require.NoError(t, err)
	assert.Equal(t, 5.0, cc, "self-pair must be retrievable")
}

// TestMapScorer_Miss verifies that an absent pair fails loudly with
// ErrScoreMissing instead of defaulting.
func TestMapScorer_Miss(t *testing.T) {
	m := score.NewMapScorer()
	m.Set("a", "a", 1)

	_, err := m.Score("a", "x")
	assert.ErrorIs(t, err, score.ErrScoreMissing, "missing pair must error, not default")
}

// TestMapScorer_Overwrite verifies last-write-wins on repeated Set calls.
func TestMapScorer_Overwrite(t *testing.T) {
	m := score.NewMapScorer()
	m.Set("a", "b", 1)
	m.Set("b", "a", 7)

	v, err := m.Score("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 7.0, v, "later Set on the unordered pair must overwrite")
	assert.Equal(t, 1, m.Len(), "both directions share one table entry")
}

// TestIdentity covers the match/mismatch split and totality.
func TestIdentity(t *testing.T) {
	id := score.NewIdentity(1, -1)

	same, err := id.Score("p", "p")
	require.NoError(t, err)
	assert.Equal(t, 1.0, same)

	diff, err := id.Score("p", "q")
	require.NoError(t, err)
	assert.Equal(t, -1.0, diff)
}
