package profile

import (
	"errors"

	"go.uber.org/zap"
)

// Sentinel errors returned by profile alignment.
var (
	// ErrEmptyProfile indicates a profile with no rows.
	ErrEmptyProfile = errors.New("profile: profile has no rows")

	// ErrRaggedProfile indicates rows of unequal length; a profile is a
	// rectangular alignment block by construction.
	ErrRaggedProfile = errors.New("profile: rows have unequal length")

	// ErrSonorityMismatch indicates that a row's sonority contour does
	// not match its non-gap cell count.
	ErrSonorityMismatch = errors.New("profile: sonority does not match rows")

	// ErrBadGapWeight indicates a negative column gap weight.
	ErrBadGapWeight = errors.New("profile: gap weight must be >= 0")
)

// Profile is a small alignment block treated as a unit: one or more
// already-aligned rows of equal length.
//
// IDs carries one caller-defined identifier per row (the engine stores
// canonical sequence ids there) and travels untouched through merges.
// Son, when present, holds each row's original ungapped sonority
// contour and enables consensus-based structural biasing; a nil Son on
// either input disables structure for that alignment.
type Profile struct {
	IDs  []int
	Rows [][]string
	Son  [][]int
}

// New builds a single-row leaf profile. son may be nil.
func New(id int, tokens []string, son []int) Profile {
	row := append([]string(nil), tokens...)
	p := Profile{
		IDs:  []int{id},
		Rows: [][]string{row},
	}
	if son != nil {
		p.Son = [][]int{append([]int(nil), son...)}
	}

	return p
}

// Width returns the number of alignment columns.
func (p Profile) Width() int {
	if len(p.Rows) == 0 {
		return 0
	}

	return len(p.Rows[0])
}

// validate enforces the rectangularity and sonority contracts.
func (p Profile) validate(gap string) error {
	if len(p.Rows) == 0 {
		return ErrEmptyProfile
	}
	w := len(p.Rows[0])
	for _, row := range p.Rows {
		if len(row) != w {
			return ErrRaggedProfile
		}
	}
	if p.Son == nil {
		return nil
	}
	if len(p.Son) != len(p.Rows) {
		return ErrSonorityMismatch
	}
	for r, row := range p.Rows {
		nonGap := 0
		for _, c := range row {
			if c != gap {
				nonGap++
			}
		}
		if len(p.Son[r]) != nonGap {
			return ErrSonorityMismatch
		}
	}

	return nil
}

// Options configures profile-level scoring.
//
// GapWeight – denominator contribution of a gap cell in the
// column-pair score (non-gap pairs contribute 1); the default 0.5
// makes gappy columns matter less without vanishing entirely.
// Logger    – diagnostics sink for degenerate columns; nil means no
// diagnostics (zap.NewNop).
type Options struct {
	GapWeight float64
	Logger    *zap.Logger
}

// DefaultOptions returns the profile defaults: gap weight 0.5, no
// diagnostics logger.
func DefaultOptions() Options {
	return Options{
		GapWeight: 0.5,
		Logger:    zap.NewNop(),
	}
}

// validate enforces option contracts and fills the nil logger.
func (o *Options) validate() error {
	if o.GapWeight < 0 {
		return ErrBadGapWeight
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return nil
}
