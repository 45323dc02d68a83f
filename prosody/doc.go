// Package prosody derives per-position structural tags from sonority
// values and turns them into the gap-opening weight vectors used by the
// alignment engine.
//
// 🚀 Why structural tags?
//
//	Phonetic sequences are not flat symbol strings: a syllable has an
//	onset, a sonority peak, and a coda, and words carry tones and
//	boundary markers.  Biasing the aligner toward matching positions of
//	the same structural role (and away from opening gaps in stable
//	positions) produces markedly better alignments than symbol
//	similarity alone.
//
// ✨ Key pieces:
//   - Tag         — closed enum: Initial, Ascending, Peak, Descending,
//     Final, Tone, Break.
//   - String      — sonority contour → prosodic string ([]Tag).
//   - Close       — "one ordinal step apart" adjacency used for the
//     half structural bonus; Tone and Break are close only to
//     themselves.
//   - GapWeights  — per-position gap-opening penalties, scaled per tag.
//   - Consensus   — column-wise consensus sonority over an aligned
//     block, with the fallback chain for degenerate columns.
//
// All functions are pure and deterministic; the package has no
// configuration state beyond its documented default constants.
package prosody
