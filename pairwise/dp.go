package pairwise

// This file holds the four DP recurrences. All cores operate on a
// prefetched, structure-adjusted score matrix sim (n rows by m columns),
// per-position gap weight vectors wa (len n) and wb (len m, both already
// negative), and the gap-extension scale. They return index alignments:
// alnA[k]/alnB[k] hold token indices or -1 for a gap, and every core
// maintains the invariant len(alnA) == len(alnB).
//
// Gap model: a gap step pays its full per-position weight unless the
// incoming traceback already points in the same gap direction, in which
// case the weight is multiplied by scale. This traceback-conditioned
// rule stands in for a three-state affine automaton and is preserved
// exactly for output compatibility (see package comment).
//
// Tie-break (fixed for reproducibility): gap-in-B >= match >= gap-in-A,
// with >= on the earlier candidate.

// trace encodes the incoming direction of a DP cell.
type trace int8

const (
	trNone trace = iota
	trDiag       // match/mismatch: consumed a[i-1] and b[j-1]
	trUp         // consumed a[i-1] against a gap
	trLeft       // consumed b[j-1] against a gap
)

// gapCost returns the step cost for weight w given whether the incoming
// traceback already opened a gap in the same direction.
func gapCost(w float64, extending bool, scale float64) float64 {
	if extending {
		return w * scale
	}

	return w
}

// allocDP allocates the (n+1)x(m+1) score and traceback matrices.
func allocDP(n, m int) ([][]float64, [][]trace) {
	s := make([][]float64, n+1)
	t := make([][]trace, n+1)
	for i := range s {
		s[i] = make([]float64, m+1)
		t[i] = make([]trace, m+1)
	}

	return s, t
}

// globalCore runs Needleman-Wunsch with accumulating boundary gaps.
func globalCore(sim [][]float64, wa, wb []float64, scale float64) (alnA, alnB []int, best float64) {
	n, m := len(wa), len(wb)
	s, t := allocDP(n, m)

	// Boundary rows accumulate gap costs; the first step pays the full
	// weight, subsequent steps the scaled extension.
	for i := 1; i <= n; i++ {
		s[i][0] = s[i-1][0] + gapCost(wa[i-1], i > 1, scale)
		t[i][0] = trUp
	}
	for j := 1; j <= m; j++ {
		s[0][j] = s[0][j-1] + gapCost(wb[j-1], j > 1, scale)
		t[0][j] = trLeft
	}

	var up, diag, left float64
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			up = s[i-1][j] + gapCost(wa[i-1], t[i-1][j] == trUp, scale)
			diag = s[i-1][j-1] + sim[i-1][j-1]
			left = s[i][j-1] + gapCost(wb[j-1], t[i][j-1] == trLeft, scale)
			s[i][j], t[i][j] = pick3(up, diag, left)
		}
	}

	alnA, alnB = tracebackFull(t, n, m)

	return alnA, alnB, s[n][m]
}

// overlapCore runs semi-global alignment: leading and trailing gaps in
// either sequence are free.
func overlapCore(sim [][]float64, wa, wb []float64, scale float64) (alnA, alnB []int, best float64) {
	n, m := len(wa), len(wb)
	s, t := allocDP(n, m)

	// Free leading gaps.
	for i := 1; i <= n; i++ {
		t[i][0] = trUp
	}
	for j := 1; j <= m; j++ {
		t[0][j] = trLeft
	}

	var up, diag, left float64
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			up = s[i-1][j] + gapCost(wa[i-1], t[i-1][j] == trUp, scale)
			if j == m {
				up = s[i-1][j] // trailing gaps in b are free
			}
			diag = s[i-1][j-1] + sim[i-1][j-1]
			left = s[i][j-1] + gapCost(wb[j-1], t[i][j-1] == trLeft, scale)
			if i == n {
				left = s[i][j-1] // trailing gaps in a are free
			}
			s[i][j], t[i][j] = pick3(up, diag, left)
		}
	}

	alnA, alnB = tracebackFull(t, n, m)

	return alnA, alnB, s[n][m]
}

// localCore runs Smith-Waterman: scores are floored at zero, the running
// maximum cell is tracked, and the traceback stops at the first
// zero-valued predecessor. It returns only the aligned core plus the
// core's half-open spans [startA,endA) and [startB,endB).
func localCore(sim [][]float64, wa, wb []float64, scale float64) (alnA, alnB []int, startA, endA, startB, endB int, best float64) {
	n, m := len(wa), len(wb)
	s, t := allocDP(n, m)

	var (
		up, diag, left, v float64
		tr                trace
		bestI, bestJ      int
	)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			up = s[i-1][j] + gapCost(wa[i-1], t[i-1][j] == trUp, scale)
			diag = s[i-1][j-1] + sim[i-1][j-1]
			left = s[i][j-1] + gapCost(wb[j-1], t[i][j-1] == trLeft, scale)
			v, tr = pick3(up, diag, left)
			if v <= 0 {
				v, tr = 0, trNone
			}
			s[i][j], t[i][j] = v, tr
			// Strictly greater keeps the earliest maximum: deterministic.
			if v > best {
				best, bestI, bestJ = v, i, j
			}
		}
	}

	if best == 0 {
		// No positive-scoring segment: empty core at the origin.
		return nil, nil, 0, 0, 0, 0, 0
	}

	i, j := bestI, bestJ
	for (i > 0 || j > 0) && s[i][j] > 0 {
		switch t[i][j] {
		case trUp:
			alnA = append(alnA, i-1)
			alnB = append(alnB, -1)
			i--
		case trLeft:
			alnA = append(alnA, -1)
			alnB = append(alnB, j-1)
			j--
		default:
			alnA = append(alnA, i-1)
			alnB = append(alnB, j-1)
			i--
			j--
		}
	}
	reverseInts(alnA)
	reverseInts(alnB)

	return alnA, alnB, i, bestI, j, bestJ, best
}

// dialignCore maximizes the summed similarity of diagonal runs; no gap
// penalties accrue. At each cell all diagonal runs of length 1..min(i,j)
// ending there are considered (run sums accumulate incrementally, which
// is arithmetically identical to recomputing each run).
func dialignCore(sim [][]float64, n, m int) (alnA, alnB []int, best float64) {
	s := make([][]float64, n+1)
	// t encodes: k > 0 diagonal run of length k; -1 gap step up; -2 gap
	// step left.
	t := make([][]int, n+1)
	for i := range s {
		s[i] = make([]float64, m+1)
		t[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		t[i][0] = -1
	}
	for j := 1; j <= m; j++ {
		t[0][j] = -2
	}

	var (
		up, left, run, bestRun float64
		k, bestK, kmax         int
	)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			up = s[i-1][j]
			left = s[i][j-1]

			bestRun, bestK = 0, 0
			run = 0
			kmax = i
			if j < i {
				kmax = j
			}
			for k = 1; k <= kmax; k++ {
				run += sim[i-k][j-k]
				if bestK == 0 || s[i-k][j-k]+run > bestRun {
					bestRun = s[i-k][j-k] + run
					bestK = k
				}
			}

			switch {
			case up >= bestRun && up >= left:
				s[i][j], t[i][j] = up, -1
			case bestRun >= left:
				s[i][j], t[i][j] = bestRun, bestK
			default:
				s[i][j], t[i][j] = left, -2
			}
		}
	}

	i, j := n, m
	for i > 0 || j > 0 {
		switch tr := t[i][j]; {
		case tr > 0:
			for k = 0; k < tr; k++ {
				alnA = append(alnA, i-1-k)
				alnB = append(alnB, j-1-k)
			}
			i -= tr
			j -= tr
		case tr == -1:
			alnA = append(alnA, i-1)
			alnB = append(alnB, -1)
			i--
		default:
			alnA = append(alnA, -1)
			alnB = append(alnB, j-1)
			j--
		}
	}
	reverseInts(alnA)
	reverseInts(alnB)

	return alnA, alnB, s[n][m]
}

// pick3 applies the fixed tie-break: up >= diag >= left, >= favoring the
// earlier candidate.
func pick3(up, diag, left float64) (float64, trace) {
	if up >= diag && up >= left {
		return up, trUp
	}
	if diag >= left {
		return diag, trDiag
	}

	return left, trLeft
}

// tracebackFull walks a filled traceback matrix from (n,m) to (0,0).
func tracebackFull(t [][]trace, n, m int) (alnA, alnB []int) {
	i, j := n, m
	for i > 0 || j > 0 {
		switch t[i][j] {
		case trUp:
			alnA = append(alnA, i-1)
			alnB = append(alnB, -1)
			i--
		case trLeft:
			alnA = append(alnA, -1)
			alnB = append(alnB, j-1)
			j--
		default:
			alnA = append(alnA, i-1)
			alnB = append(alnB, j-1)
			i--
			j--
		}
	}
	reverseInts(alnA)
	reverseInts(alnB)

	return alnA, alnB
}

// reverseInts reverses s in place.
func reverseInts(s []int) {
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
}
