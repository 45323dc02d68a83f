package msa

import (
	"errors"

	"github.com/katalvlaran/msalign/guidetree"
	"github.com/katalvlaran/msalign/pairwise"
	"github.com/katalvlaran/msalign/prosody"
	"github.com/katalvlaran/msalign/score"
)

// Sentinel errors returned by the alignment session.
var (
	// ErrNoSequences indicates an empty input set.
	ErrNoSequences = errors.New("msa: no input sequences")

	// ErrNilModel indicates a nil sound-class model.
	ErrNilModel = errors.New("msa: class model is nil")

	// ErrModelMismatch indicates that a model emitted a class or
	// sonority sequence whose length differs from its token sequence.
	ErrModelMismatch = errors.New("msa: model output length mismatch")

	// ErrNotAligned indicates that an operation requiring a published
	// alignment ran before any align call.
	ErrNotAligned = errors.New("msa: no alignment computed yet")

	// ErrNoSonority indicates a sonority-dependent operation on a
	// session constructed without a sonority model.
	ErrNoSonority = errors.New("msa: sonority model absent")

	// ErrBadCheck indicates an acceptance policy outside the closed enum.
	ErrBadCheck = errors.New("msa: unknown acceptance policy")

	// ErrBadSwapPenalty indicates a positive swap penalty.
	ErrBadSwapPenalty = errors.New("msa: swap penalty must be <= 0")
)

// ClassModel is the external sound-class seam: it maps token sequences
// to coarser class sequences and supplies the class-pair scorer.
//
// Contracts:
//   - Classify must return exactly one class per token.
//   - Scorer must be total over every class pair that can co-occur,
//     and symmetric.
type ClassModel interface {
	Classify(tokens []string) ([]string, error)
	Scorer() score.Scorer
}

// SonorityModel is the external sonority seam: one small integer per
// token, used only to derive prosodic structure. A nil model disables
// all structural biasing and restricted-position logic engine-wide.
type SonorityModel interface {
	Sonority(tokens []string) ([]int, error)
}

// Check selects the acceptance policy of iterative refinement.
type Check int

const (
	// CheckImmediate tests the objective after every single partition
	// and rolls back just that step on non-improvement.
	CheckImmediate Check = iota

	// CheckFinal applies all partitions, tests once, and rolls back the
	// entire batch on non-improvement.
	CheckFinal
)

// valid reports whether c is inside the closed enum.
func (c Check) valid() bool { return c == CheckImmediate || c == CheckFinal }

// AlignOptions configures one alignment pipeline run.
//
// Mode/GapOpen/Scale/Factor/Restricted feed the pairwise DP (see
// pairwise.Options); Method picks the guide-tree algorithm; GapWeight
// is the profile column gap weight; Workers bounds the all-pairs
// fan-out (<= 0 means one worker per CPU).
type AlignOptions struct {
	Mode       pairwise.Mode
	Method     guidetree.Method
	GapOpen    float64
	Scale      float64
	Factor     float64
	GapWeight  float64
	Restricted []prosody.Tag
	Workers    int
}

// DefaultAlignOptions returns the standard pipeline configuration:
// global mode, UPGMA guide tree, gap opening -2, extension scale 0.5,
// structural factor 0.3, column gap weight 0.5, Tone/Break restricted.
func DefaultAlignOptions() AlignOptions {
	return AlignOptions{
		Mode:       pairwise.Global,
		Method:     guidetree.MethodUPGMA,
		GapOpen:    -2,
		Scale:      0.5,
		Factor:     0.3,
		GapWeight:  0.5,
		Restricted: []prosody.Tag{prosody.Tone, prosody.Break},
	}
}

// pairwiseOptions projects AlignOptions onto the DP option set.
func (o AlignOptions) pairwiseOptions() pairwise.Options {
	return pairwise.Options{
		Mode:       o.Mode,
		GapOpen:    o.GapOpen,
		Scale:      o.Scale,
		Factor:     o.Factor,
		Restricted: o.Restricted,
	}
}

// SwapOptions configures swap detection.
//
// Penalty is the (non-positive) charge for a swap placeholder aligned
// against a gap; placeholder-vs-residue is charged prohibitively and
// placeholder-vs-placeholder is neutral regardless of Penalty.
type SwapOptions struct {
	Penalty float64
}

// DefaultSwapOptions returns the standard swap penalty of -3.
func DefaultSwapOptions() SwapOptions {
	return SwapOptions{Penalty: -3}
}

// PairAlignment is one cached pairwise result: the two aligned rows and
// the DP score.
type PairAlignment struct {
	A, B  []string
	Score float64
}
