// Package score provides the symbol-pair scorers consumed by the alignment
// engine: a strict map-backed table, a trivial identity scorer, and an
// evidence-accumulated position-pair Library.
//
// 🚀 What lives here?
//
//	Every dynamic-programming alignment needs a similarity function over
//	symbol pairs.  The engine itself never hard-codes one; it receives a
//	Scorer and prefetches all scores it will need before entering the DP
//	loops, so a missing table entry surfaces as ErrScoreMissing up front
//	instead of corrupting a half-filled matrix.
//
// ✨ Key pieces:
//   - Scorer       — the minimal interface: Score(a, b) (float64, error).
//   - MapScorer    — explicit symmetric table; misses fail loudly.
//   - Identity     — match/mismatch scorer for tests and simple models.
//   - Library      — T-Coffee-style table over position identifiers,
//     incremented by evidence from many pairwise alignments and frozen
//     into an immutable Scorer with a documented neutral-zero fallback.
//
// Determinism:
//
//	All scorers are symmetric by construction (Score(a,b) == Score(b,a));
//	the Library stores unordered keys so accumulation order cannot skew
//	lookups.
//
// See example_test.go for usage.
package score
