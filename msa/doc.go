// Package msa orchestrates multiple sequence alignment for symbolic
// (phonetic) sequences: it turns a set of token sequences into one
// rectangular alignment, column by column, token by token.
//
// 🚀 Pipeline:
//
//	tokens ── ClassModel ──▶ class sequences ── dedup ──▶ uniques
//	uniques ── all-pairs DP (errgroup fan-out) ──▶ distance matrix
//	distances ── guidetree ──▶ merge order ── profile ──▶ alignment
//	alignment ── broadcast ──▶ one aligned row per input sequence
//
// ✨ Operations on a session (Multiple):
//   - ProgAlign          — classic progressive alignment.
//   - LibAlign           — consistency alignment through a frozen
//     position library with transitive evidence.
//   - IterateOrphans / IterateClusters / IterateSimilarGapSites /
//     IterateAllSequences — iterative refinement, never worsening the
//     sum-of-pairs objective.
//   - SwapCheck          — detection of crossed (metathesized) sites.
//   - SumOfPairs, LocalPeaks, ConsensusSonority, PairwiseAlignments —
//     inspection of the published result.
//
// The engine works on sound classes and broadcasts the original tokens
// back afterwards, so every published row spells the input sequence
// exactly, gaps aside. Sequences with identical class strings are
// aligned once and share their row shape.
//
// Models are seams: ClassModel supplies the transliteration and the
// class scorer, SonorityModel (optional) the contours behind prosodic
// weighting. The package never hardcodes an alphabet.
package msa
