// Package guidetree builds the binary merge order ("tree matrix") that
// drives progressive multiple alignment, from an all-pairs distance
// matrix.
//
// 🚀 What is a guide tree?
//
//	Progressive alignment merges two sequences (or blocks) at a time;
//	the order of those merges decides most of the final quality. The
//	tree matrix is the flattened form of that order: N-1 records of
//	(left, right, leftBranch, rightBranch) where ids >= N refer to the
//	internal node created by an earlier record.
//
// ✨ Algorithms:
//   - UPGMA           — average linkage, ultrametric branch lengths.
//   - NeighborJoining — divergence-corrected joins, asymmetric branch
//     lengths, two-cluster base case.
//   - Flat            — threshold-bounded single/complete/average
//     linkage partition (no tree), used to propose refinement groups.
//
// All three run on explicit integer-id cluster arenas with
// deterministic ascending scans — no recursion, no map-iteration
// ordering effects, identical output for identical input.
//
// Invariants (tested):
//   - exactly N-1 records for N leaves;
//   - every leaf id appears exactly once across all records, directly
//     or via transitive membership;
//   - the final record's combined cluster contains every leaf.
package guidetree
