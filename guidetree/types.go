package guidetree

import "errors"

// Sentinel errors returned by guide-tree construction.
var (
	// ErrUnknownMethod indicates a clustering method outside the closed
	// enum. Configuration errors abort the alignment session.
	ErrUnknownMethod = errors.New("guidetree: unknown clustering method")

	// ErrUnknownLinkage indicates a flat-clustering linkage outside the
	// closed enum.
	ErrUnknownLinkage = errors.New("guidetree: unknown linkage")

	// ErrBadMatrix indicates a ragged or non-square distance matrix.
	ErrBadMatrix = errors.New("guidetree: distance matrix must be square")

	// ErrBadThreshold indicates a negative flat-clustering threshold.
	ErrBadThreshold = errors.New("guidetree: threshold must be >= 0")
)

// Merge is one guide-tree record: the two cluster ids joined and their
// branch lengths. Ids below the leaf count denote original leaves; an
// id >= N denotes the internal node created by an earlier record
// (record k creates cluster id N+k), so later stages can walk records
// in creation order.
type Merge struct {
	Left, Right      int
	LeftLen, RightLen float64
}

// Method selects the guide-tree clustering algorithm.
type Method int

const (
	// MethodUPGMA is average-linkage agglomerative clustering with
	// ultrametric branch lengths.
	MethodUPGMA Method = iota

	// MethodNeighbor is saitou-nei neighbor-joining with asymmetric
	// branch lengths.
	MethodNeighbor
)

// String renders the method for error messages and diagnostics.
func (m Method) String() string {
	switch m {
	case MethodUPGMA:
		return "upgma"
	case MethodNeighbor:
		return "neighbor"
	default:
		return "unknown"
	}
}

// Linkage selects the inter-cluster distance of flat clustering.
type Linkage int

const (
	// LinkageSingle uses the minimum leaf-pair distance.
	LinkageSingle Linkage = iota

	// LinkageComplete uses the maximum leaf-pair distance.
	LinkageComplete

	// LinkageAverage uses the mean leaf-pair distance (flat UPGMA).
	LinkageAverage
)

// Build produces the guide tree of a distance matrix under the chosen
// method: exactly N-1 merge records for N leaves. A single-leaf matrix
// yields no records.
func Build(dist [][]float64, method Method) ([]Merge, error) {
	switch method {
	case MethodUPGMA:
		return UPGMA(dist)
	case MethodNeighbor:
		return NeighborJoining(dist)
	default:
		return nil, ErrUnknownMethod
	}
}

// checkMatrix enforces squareness; the content (symmetry, zero
// diagonal) is the caller's contract and is not re-derived here.
func checkMatrix(dist [][]float64) error {
	for _, row := range dist {
		if len(row) != len(dist) {
			return ErrBadMatrix
		}
	}

	return nil
}

// pairKey canonicalizes an unordered cluster-id pair for distance maps.
func pairKey(i, j int) [2]int {
	if j < i {
		i, j = j, i
	}

	return [2]int{i, j}
}
