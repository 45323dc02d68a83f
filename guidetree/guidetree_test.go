package guidetree_test

import (
	"testing"

	"github.com/katalvlaran/msalign/guidetree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leafSet expands a tree matrix into the set of leaves reachable from
// the final record, verifying each id is used exactly once on the way.
func leafSet(t *testing.T, tree []guidetree.Merge, n int) map[int]bool {
	t.Helper()

	members := make(map[int][]int, n+len(tree))
	for i := 0; i < n; i++ {
		members[i] = []int{i}
	}
	used := make(map[int]bool)
	for k, rec := range tree {
		require.NotContains(t, used, rec.Left, "cluster id reused")
		require.NotContains(t, used, rec.Right, "cluster id reused")
		used[rec.Left], used[rec.Right] = true, true
		members[n+k] = append(append([]int(nil), members[rec.Left]...), members[rec.Right]...)
	}

	out := make(map[int]bool)
	for _, leaf := range members[n+len(tree)-1] {
		out[leaf] = true
	}

	return out
}

// TestUPGMA_ThreeLeaves checks merge order, synthetic ids and
// ultrametric branch lengths on a hand-computed matrix.
func TestUPGMA_ThreeLeaves(t *testing.T) {
	dist := [][]float64{
		{0, 2, 8},
		{2, 0, 8},
		{8, 8, 0},
	}

	tree, err := guidetree.UPGMA(dist)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, guidetree.Merge{Left: 0, Right: 1, LeftLen: 1, RightLen: 1}, tree[0])
	assert.Equal(t, guidetree.Merge{Left: 2, Right: 3, LeftLen: 4, RightLen: 3}, tree[1])
}

// TestNeighborJoining_ThreeLeaves checks the divergence-split branch
// lengths on an additive three-taxon matrix.
func TestNeighborJoining_ThreeLeaves(t *testing.T) {
	// Additive tree: a and b join at depth 1 and 2; c hangs off at 4.
	dist := [][]float64{
		{0, 3, 5},
		{3, 0, 6},
		{5, 6, 0},
	}

	tree, err := guidetree.NeighborJoining(dist)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, guidetree.Merge{Left: 0, Right: 1, LeftLen: 1, RightLen: 2}, tree[0])
	assert.Equal(t, guidetree.Merge{Left: 2, Right: 3, LeftLen: 2, RightLen: 2}, tree[1])
}

// TestBuild_Completeness verifies the N-1 record count and full leaf
// coverage for both methods on a larger random-ish matrix.
func TestBuild_Completeness(t *testing.T) {
	dist := [][]float64{
		{0, 4, 9, 7, 6},
		{4, 0, 8, 6, 5},
		{9, 8, 0, 3, 7},
		{7, 6, 3, 0, 5},
		{6, 5, 7, 5, 0},
	}

	for _, method := range []guidetree.Method{guidetree.MethodUPGMA, guidetree.MethodNeighbor} {
		tree, err := guidetree.Build(dist, method)
		require.NoError(t, err, "method %v", method)
		require.Len(t, tree, 4, "method %v: N-1 records", method)

		leaves := leafSet(t, tree, 5)
		assert.Len(t, leaves, 5, "method %v: all leaves reachable", method)
		for i := 0; i < 5; i++ {
			assert.True(t, leaves[i], "method %v: leaf %d reachable", method, i)
		}
	}
}

// TestBuild_UnknownMethod verifies the configuration-error sentinel.
func TestBuild_UnknownMethod(t *testing.T) {
	_, err := guidetree.Build([][]float64{{0}}, guidetree.Method(42))
	assert.ErrorIs(t, err, guidetree.ErrUnknownMethod)
}

// TestBuild_BadMatrix verifies the ragged-matrix sentinel.
func TestBuild_BadMatrix(t *testing.T) {
	_, err := guidetree.Build([][]float64{{0, 1}, {1}}, guidetree.MethodUPGMA)
	assert.ErrorIs(t, err, guidetree.ErrBadMatrix)
}

// TestBuild_SingleLeaf verifies the empty tree for one leaf.
func TestBuild_SingleLeaf(t *testing.T) {
	tree, err := guidetree.Build([][]float64{{0}}, guidetree.MethodUPGMA)
	require.NoError(t, err)
	assert.Empty(t, tree)
}

// TestFlat_TwoGroups checks the obvious two-block partition under all
// linkages.
func TestFlat_TwoGroups(t *testing.T) {
	dist := [][]float64{
		{0, 1, 9, 9},
		{1, 0, 9, 9},
		{9, 9, 0, 1},
		{9, 9, 1, 0},
	}

	for _, link := range []guidetree.Linkage{
		guidetree.LinkageSingle,
		guidetree.LinkageComplete,
		guidetree.LinkageAverage,
	} {
		got, err := guidetree.Flat(dist, 2, link)
		require.NoError(t, err, "linkage %v", link)
		assert.Equal(t, [][]int{{0, 1}, {2, 3}}, got, "linkage %v", link)
	}
}

// TestFlat_ThresholdZero keeps every leaf a singleton.
func TestFlat_ThresholdZero(t *testing.T) {
	dist := [][]float64{
		{0, 1},
		{1, 0},
	}

	got, err := guidetree.Flat(dist, 0, guidetree.LinkageSingle)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {1}}, got)
}

// TestFlat_UnknownLinkage verifies the linkage sentinel.
func TestFlat_UnknownLinkage(t *testing.T) {
	_, err := guidetree.Flat([][]float64{{0}}, 1, guidetree.Linkage(7))
	assert.ErrorIs(t, err, guidetree.ErrUnknownLinkage)
}
