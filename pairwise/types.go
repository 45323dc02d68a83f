package pairwise

import (
	"errors"

	"github.com/katalvlaran/msalign/prosody"
)

// Gap is the marker emitted for gap cells in aligned output.
const Gap = "-"

// restrictedPenalty is the score assigned to a disallowed pairing of a
// restricted position with an unrestricted one. A large finite constant
// rather than -Inf keeps local-mode zero-flooring and score arithmetic
// free of NaN.
const restrictedPenalty = -1e8

// Sentinel errors returned by the pairwise aligner.
var (
	// ErrUnknownMode indicates an alignment mode outside the closed enum.
	// Configuration errors abort the alignment session.
	ErrUnknownMode = errors.New("pairwise: unknown alignment mode")

	// ErrBadGapOpen indicates a positive gap-opening penalty; penalties
	// must be negative or zero.
	ErrBadGapOpen = errors.New("pairwise: gap-opening penalty must be <= 0")

	// ErrBadScale indicates a gap-extension scale outside [0, 1].
	ErrBadScale = errors.New("pairwise: extension scale must be in [0,1]")

	// ErrBadFactor indicates a negative structural-bonus factor.
	ErrBadFactor = errors.New("pairwise: structural factor must be >= 0")

	// ErrLengthMismatch indicates that a sequence's weight or tag vector
	// does not match its token count.
	ErrLengthMismatch = errors.New("pairwise: weights/tags length mismatch")

	// ErrBadMatrix indicates a ragged or mis-shaped score matrix passed to
	// AlignMatrix.
	ErrBadMatrix = errors.New("pairwise: score matrix shape mismatch")
)

// Mode selects the dynamic-programming recurrence.
type Mode int

const (
	// Global is standard Needleman-Wunsch alignment over the full
	// lengths of both sequences.
	Global Mode = iota

	// Local is Smith-Waterman-style alignment: the best-scoring core
	// segment pair, with unaligned prefixes and suffixes.
	Local

	// Overlap (semi-global) alignment makes gaps at the very start and
	// end of either sequence free, so one sequence may sit inside the
	// other without edge penalties.
	Overlap

	// Dialign abandons gap penalties in favor of maximizing the summed
	// similarity of diagonal runs.
	Dialign
)

// String renders the mode for error messages and diagnostics.
func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case Local:
		return "local"
	case Overlap:
		return "overlap"
	case Dialign:
		return "dialign"
	default:
		return "unknown"
	}
}

// valid reports whether m is inside the closed enum.
func (m Mode) valid() bool { return m >= Global && m <= Dialign }

// Sequence is one aligner input: tokens plus optional per-position
// gap-opening weights and structural tags.
//
// Contracts:
//   - Weights, when non-nil, must have len == len(Tokens); entries are
//     negative gap-opening penalties (already scaled per position).
//     A nil Weights uses the uniform Options.GapOpen.
//   - Tags, when non-nil, must have len == len(Tokens). Nil Tags
//     disables the structural bonus and the restricted-position rule
//     for this alignment.
type Sequence struct {
	Tokens  []string
	Weights []float64
	Tags    []prosody.Tag
}

// Options configures one pairwise alignment call.
//
// GapOpen    – uniform gap-opening penalty (<= 0); per-position Weights
// on a Sequence take precedence.
// Scale      – gap-extension scale in [0,1]: a gap step whose incoming
// traceback already points in the same gap direction costs
// weight*Scale instead of the full weight. This traceback-conditioned
// rule deliberately approximates affine gaps; see the package comment.
// Factor     – structural bonus: equal tags add score*Factor, close
// tags (prosody.Close) add half of that.
// Mode       – DP recurrence; see Mode.
// Restricted – tags that may align only to gaps or to each other
// (enforced with a large negative penalty). Nil disables the rule even
// when tags are present.
type Options struct {
	Mode       Mode
	GapOpen    float64
	Scale      float64
	Factor     float64
	Restricted []prosody.Tag
}

// DefaultOptions returns the engine defaults: global mode, gap opening
// -2, extension scale 0.5, structural factor 0.3, and Tone/Break as
// restricted tags.
func DefaultOptions() Options {
	return Options{
		Mode:       Global,
		GapOpen:    -2,
		Scale:      0.5,
		Factor:     0.3,
		Restricted: []prosody.Tag{prosody.Tone, prosody.Break},
	}
}

// validate enforces option contracts; unknown modes and out-of-range
// numeric knobs are configuration errors.
func (o Options) validate() error {
	if !o.Mode.valid() {
		return ErrUnknownMode
	}
	if o.GapOpen > 0 {
		return ErrBadGapOpen
	}
	if o.Scale < 0 || o.Scale > 1 {
		return ErrBadScale
	}
	if o.Factor < 0 {
		return ErrBadFactor
	}

	return nil
}

// Result is a full-length pairwise alignment: the two gap-interspersed
// rows and the DP score.
type Result struct {
	A, B  []string
	Score float64
}

// Distance converts the alignment score into a normalized distance
// given the two self-similarities: 1 - 2*score/(selfA+selfB).
// A zero self-similarity sum yields distance 0 (degenerate input).
func (r Result) Distance(selfA, selfB float64) float64 {
	den := selfA + selfB
	if den == 0 {
		return 0
	}

	return 1 - 2*r.Score/den
}

// LocalResult is the three-segment outcome of local alignment: the
// unaligned prefixes, the aligned (gap-interspersed) cores, and the
// unaligned suffixes. Concatenating the non-gap tokens of the three
// segments reproduces each original sequence.
type LocalResult struct {
	PrefixA, CoreA, SuffixA []string
	PrefixB, CoreB, SuffixB []string
	Score                   float64
}
