// Package profile aligns two already-aligned blocks of sequences
// ("profiles") against each other.
//
// 🚀 Why profiles?
//
//	Progressive multiple alignment never re-aligns raw sequences after
//	the first level of its guide tree: it aligns whole blocks. Each
//	block is collapsed to a pseudo-sequence of column indices, scored
//	column-against-column (gap-weighted average over all cross pairs),
//	and fed through the ordinary pairwise DP. The resulting gap
//	insertions are then replayed into both blocks as all-gap columns,
//	so every row keeps its length invariant.
//
// ✨ Entry points:
//   - AlignPair — returns the two inputs independently widened
//     (iterative refinement needs the halves separately).
//   - Merge     — returns the row-wise concatenation (progressive
//     merging appends block to block).
//
// Structure-aware biasing derives a consensus sonority per column
// (average of non-gap cells, with a fallback that includes zero-valued
// entries and, failing that, a logged diagnostic — degenerate columns
// are expected in noisy data and must not abort an alignment), turns it
// into prosodic tags, and scales gap penalties per column.
//
// See example_test.go for usage.
package profile
