package prosody

// Tag is a coarse structural label for one sequence position, derived
// from the position's sonority value and its contour neighborhood.
//
// The first five tags form an ordinal contour scale (word onset through
// word offset); Tone and Break sit outside the scale and only ever
// relate to themselves.
type Tag uint8

const (
	// Initial marks the first contour position of a sequence.
	Initial Tag = iota

	// Ascending marks a position on a rising sonority slope.
	Ascending

	// Peak marks a local sonority maximum (typically the vowel).
	Peak

	// Descending marks a position on a falling sonority slope.
	Descending

	// Final marks the last contour position of a sequence.
	Final

	// Tone marks tonal material (sonority >= ToneSonority).
	Tone

	// Break marks a word or morpheme boundary (sonority <= 0).
	Break
)

// Sonority thresholds for the non-contour tags.
const (
	// ToneSonority is the sonority value at and above which a position is
	// tagged Tone rather than placed on the contour scale.
	ToneSonority = 8
)

// String renders the tag for diagnostics.
func (t Tag) String() string {
	switch t {
	case Initial:
		return "initial"
	case Ascending:
		return "ascending"
	case Peak:
		return "peak"
	case Descending:
		return "descending"
	case Final:
		return "final"
	case Tone:
		return "tone"
	case Break:
		return "break"
	default:
		return "unknown"
	}
}

// contour reports whether t sits on the five-step ordinal contour scale.
func contour(t Tag) bool { return t <= Final }

// Close reports whether two tags are structurally adjacent: equal tags
// are always close; contour tags are close when within one ordinal step;
// Tone and Break are close only to themselves.
func Close(a, b Tag) bool {
	if a == b {
		return true
	}
	if !contour(a) || !contour(b) {
		return false
	}
	d := int(a) - int(b)

	return d == 1 || d == -1
}

// Tags derives the prosodic string for a sonority contour.
//
// Rules, applied per position:
//   - sonority <= 0             → Break
//   - sonority >= ToneSonority  → Tone
//   - first contour position    → Initial, last → Final
//   - local maximum             → Peak
//   - rising toward the next    → Ascending, otherwise Descending
//
// Neighbor comparisons skip Tone/Break positions, so a tone between two
// syllables does not distort the contour around it.
func Tags(sonority []int) []Tag {
	n := len(sonority)
	tags := make([]Tag, n)

	// Indices of contour positions, in order.
	var cont []int
	for i, s := range sonority {
		switch {
		case s <= 0:
			tags[i] = Break
		case s >= ToneSonority:
			tags[i] = Tone
		default:
			cont = append(cont, i)
		}
	}
	if len(cont) == 0 {
		return tags
	}

	last := len(cont) - 1
	for k, i := range cont {
		switch {
		case k == 0:
			tags[i] = Initial
		case k == last:
			tags[i] = Final
		default:
			prev := sonority[cont[k-1]]
			next := sonority[cont[k+1]]
			cur := sonority[i]
			switch {
			case cur > prev && cur > next:
				tags[i] = Peak
			case cur < next:
				tags[i] = Ascending
			default:
				tags[i] = Descending
			}
		}
	}

	return tags
}

// Per-tag gap-opening scale applied by GapWeights. Stable positions
// (onsets, peaks) make gap opening expensive; codas, tones and
// boundaries keep it cheap.
var defaultTagWeight = map[Tag]float64{
	Initial:    1.5,
	Ascending:  1.3,
	Peak:       1.6,
	Descending: 1.1,
	Final:      0.8,
	Tone:       0.8,
	Break:      1.0,
}

// Weight returns the gap-opening scale of a single tag.
func Weight(t Tag) float64 {
	w, ok := defaultTagWeight[t]
	if !ok {
		return 1
	}

	return w
}

// GapWeights expands a prosodic string into the per-position gap-opening
// penalty vector consumed by the pairwise aligner: gapOpen (a negative
// penalty) scaled by each position's tag weight.
func GapWeights(tags []Tag, gapOpen float64) []float64 {
	out := make([]float64, len(tags))
	for i, t := range tags {
		out[i] = gapOpen * Weight(t)
	}

	return out
}

// Consensus computes the column-wise consensus sonority of an aligned
// block.
//
// rows is the aligned block (gap cells equal to the gap marker);
// sonority holds each row's original, ungapped sonority contour. For
// every column the primary rule averages the sonority of non-gap cells
// with non-zero sonority; when that denominator is zero the fallback
// re-averages including zero-valued entries; when the column has no
// non-gap cell at all it is reported as degenerate and contributes
// consensus 0.
//
// Returns the consensus contour (rounded to nearest integer) plus the
// indices of degenerate columns. Degenerate columns are expected in
// noisy real-world alignments; the caller decides how to surface them.
func Consensus(rows [][]string, sonority [][]int, gap string) (cons []int, degenerate []int) {
	if len(rows) == 0 {
		return nil, nil
	}
	width := len(rows[0])
	cons = make([]int, width)

	// cursor[r] walks row r's ungapped sonority contour.
	cursor := make([]int, len(rows))

	for c := 0; c < width; c++ {
		var (
			sum, n         float64 // primary: non-zero entries only
			sumAll, nAll   float64 // fallback: include zero entries
			value, rounded int
		)
		for r := range rows {
			if rows[r][c] == gap {
				continue
			}
			value = sonority[r][cursor[r]]
			cursor[r]++
			sumAll += float64(value)
			nAll++
			if value != 0 {
				sum += float64(value)
				n++
			}
		}

		switch {
		case n > 0:
			rounded = roundHalfUp(sum / n)
		case nAll > 0:
			rounded = roundHalfUp(sumAll / nAll)
		default:
			degenerate = append(degenerate, c)
			rounded = 0
		}
		cons[c] = rounded
	}

	return cons, degenerate
}

// roundHalfUp rounds to the nearest integer with .5 rounding away from
// zero, matching the averaging used for consensus classes.
func roundHalfUp(x float64) int {
	if x >= 0 {
		return int(x + 0.5)
	}

	return -int(-x + 0.5)
}
