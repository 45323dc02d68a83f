package score

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by scorers.
var (
	// ErrScoreMissing indicates that a requested symbol pair is absent from
	// the scoring table. This is a contract violation of the table builder,
	// not a recoverable alignment condition, so callers must not substitute
	// an arbitrary score. Match with errors.Is.
	ErrScoreMissing = errors.New("score: symbol pair not in table")
)

// Scorer is the similarity function consumed by the alignment engine.
//
// Contracts:
//   - Score must be symmetric: Score(a, b) == Score(b, a).
//   - Score must be total over every pair the engine presents, including
//     the gap-class self-pair, unless the concrete type documents a
//     fallback (only the frozen Library does).
type Scorer interface {
	// Score returns the similarity of two symbols.
	Score(a, b string) (float64, error)
}

// pairKey is an unordered symbol pair. ordered() canonicalizes so that a
// single map entry serves both lookup directions.
type pairKey [2]string

func ordered(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}

	return pairKey{a, b}
}

// MapScorer is an explicit symmetric score table. The zero value is not
// usable; construct with NewMapScorer and populate with Set.
type MapScorer struct {
	table map[pairKey]float64
}

// NewMapScorer returns an empty MapScorer.
func NewMapScorer() *MapScorer {
	return &MapScorer{table: make(map[pairKey]float64)}
}

// Set records the similarity of the unordered pair (a, b).
// Later Set calls on the same pair overwrite earlier ones.
func (m *MapScorer) Set(a, b string, v float64) {
	m.table[ordered(a, b)] = v
}

// Score returns the stored similarity of (a, b).
// A miss returns ErrScoreMissing wrapped with the offending symbols.
func (m *MapScorer) Score(a, b string) (float64, error) {
	v, ok := m.table[ordered(a, b)]
	if !ok {
		return 0, fmt.Errorf("%w: %q / %q", ErrScoreMissing, a, b)
	}

	return v, nil
}

// Len reports the number of distinct unordered pairs in the table.
func (m *MapScorer) Len() int { return len(m.table) }

// Identity scores equal symbols with Match and unequal symbols with
// Mismatch. It is total over all pairs and therefore never errors.
type Identity struct {
	Match    float64
	Mismatch float64
}

// NewIdentity returns an Identity scorer with the given match and
// mismatch similarities.
func NewIdentity(match, mismatch float64) Identity {
	return Identity{Match: match, Mismatch: mismatch}
}

// Score implements Scorer.
func (s Identity) Score(a, b string) (float64, error) {
	if a == b {
		return s.Match, nil
	}

	return s.Mismatch, nil
}
