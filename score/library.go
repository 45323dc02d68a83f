package score

// Library is an evidence-accumulated score table over position
// identifiers (T-Coffee-style consistency scores). Every cell starts at
// the neutral value 0 and is incremented by contributions observed during
// a pre-processing pass over many pairwise and third-sequence-mediated
// alignments.
//
// Contracts:
//   - Accumulation is strictly sequential; Library is not safe for
//     concurrent Add calls.
//   - Freeze publishes an immutable snapshot; the Library may keep
//     accumulating afterwards without affecting earlier snapshots.
type Library struct {
	table map[pairKey]float64
}

// NewLibrary returns an empty Library.
func NewLibrary() *Library {
	return &Library{table: make(map[pairKey]float64)}
}

// Add increments the accumulated score of the unordered pair (a, b).
func (l *Library) Add(a, b string, contribution float64) {
	l.table[ordered(a, b)] += contribution
}

// Get returns the accumulated score of (a, b); pairs never seen return
// the neutral value 0.
func (l *Library) Get(a, b string) float64 {
	return l.table[ordered(a, b)]
}

// Len reports the number of distinct unordered pairs with accumulated
// evidence.
func (l *Library) Len() int { return len(l.table) }

// Freeze returns an immutable Scorer over the current table contents.
//
// Unlike MapScorer, the frozen Library defines a fallback for unknown
// pairs: absence of evidence scores the neutral 0 rather than erroring.
// This is the one documented exception to the strict-miss rule; position
// pairs that were never co-aligned during library construction are simply
// unsupported, not invalid.
func (l *Library) Freeze() Scorer {
	snap := make(map[pairKey]float64, len(l.table))
	for k, v := range l.table {
		snap[k] = v
	}

	return frozenLibrary{table: snap}
}

// frozenLibrary is the immutable Scorer view published by Freeze.
type frozenLibrary struct {
	table map[pairKey]float64
}

// Score implements Scorer. Misses return the neutral 0, never an error.
func (f frozenLibrary) Score(a, b string) (float64, error) {
	return f.table[ordered(a, b)], nil
}
