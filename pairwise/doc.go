// Package pairwise computes optimal alignments of two token sequences
// by dynamic programming under four scoring regimes, with optional
// structure-aware biasing.
//
// 🚀 What is pairwise alignment?
//
//	Given two sequences of discrete symbols and a similarity function
//	over symbol pairs, the aligner inserts gap markers so that
//	corresponding positions line up with maximal total similarity.
//	It is the base leaf algorithm of the whole engine: distances,
//	guide trees, profiles and refinement all bottom out here.
//
// ✨ Modes:
//   - Global  — Needleman-Wunsch over the full lengths.
//   - Local   — Smith-Waterman best segment pair; three-part result
//     (prefix, aligned core, suffix) via AlignLocal.
//   - Overlap — semi-global: edge gaps on either side are free.
//   - Dialign — gap-penalty-free maximization of diagonal-run sums.
//
// Every mode has a structure-restricted variant: tags listed in
// Options.Restricted (tones, boundaries) may align only to gaps or to
// other restricted positions.
//
// ⚠️ Gap model (deliberate approximation):
//
//	Gap costs are traceback-conditioned: a gap step pays its full
//	per-position weight unless the previous traceback step already
//	points in the same gap direction, in which case the weight is
//	scaled by Options.Scale. This is not a textbook three-state affine
//	(Gotoh) automaton; it is kept exactly as specified for output
//	compatibility with the established method. Tie-breaks are fixed
//	(gap-in-B >= match >= gap-in-A) so results are reproducible.
//
// Performance:
//
//   - Time:   O(n·m) per call; Dialign O(n·m·min(n,m)).
//   - Memory: O(n·m) for the score and traceback matrices.
//
// See example_test.go for usage.
package pairwise
