package guidetree

// NeighborJoining clusters a distance matrix by the saitou-nei
// criterion: at each step join the pair minimizing
// d(i,j) - r(i) - r(j), where r is the per-cluster divergence (row sum
// over active clusters divided by activeCount-2). Branch lengths split
// the raw pairwise distance asymmetrically by the divergence
// difference; remaining distances are rewired with the standard NJ
// correction (d(i,o)+d(j,o)-d(i,j))/2.
//
// The two-cluster base case joins the survivors directly, splitting the
// remaining distance in half. Like UPGMA, the algorithm runs on an
// explicit id arena with deterministic ascending-order scans.
//
// Branch lengths may come out negative on non-additive input; they are
// reported as computed (consumers treat them as relative weights, not
// metric lengths).
//
// Complexity: O(N^2) per join, O(N^3) total; memory O(N^2).
func NeighborJoining(dist [][]float64) ([]Merge, error) {
	if err := checkMatrix(dist); err != nil {
		return nil, err
	}
	n := len(dist)
	if n < 2 {
		return nil, nil
	}

	active := make([]int, n)
	d := make(map[[2]int]float64, n*n/2)
	for i := 0; i < n; i++ {
		active[i] = i
		for j := i + 1; j < n; j++ {
			d[pairKey(i, j)] = dist[i][j]
		}
	}

	out := make([]Merge, 0, n-1)
	next := n
	for len(active) > 2 {
		// Divergence of every active cluster.
		r := make(map[int]float64, len(active))
		denom := float64(len(active) - 2)
		for _, i := range active {
			var sum float64
			for _, k := range active {
				if k != i {
					sum += d[pairKey(i, k)]
				}
			}
			r[i] = sum / denom
		}

		// Closest pair under the NJ criterion.
		var (
			bi, bj = -1, -1
			bq     float64
		)
		for x := 0; x < len(active); x++ {
			for y := x + 1; y < len(active); y++ {
				i, j := active[x], active[y]
				q := d[pairKey(i, j)] - r[i] - r[j]
				if bi < 0 || q < bq {
					bi, bj, bq = i, j, q
				}
			}
		}

		raw := d[pairKey(bi, bj)]
		li := raw/2 + (r[bi]-r[bj])/2
		out = append(out, Merge{Left: bi, Right: bj, LeftLen: li, RightLen: raw - li})

		for _, o := range active {
			if o == bi || o == bj {
				continue
			}
			d[pairKey(next, o)] = (d[pairKey(bi, o)] + d[pairKey(bj, o)] - raw) / 2
		}
		active = retire(active, bi, bj, next)
		next++
	}

	// Base case: split the last distance in half.
	raw := d[pairKey(active[0], active[1])]
	out = append(out, Merge{
		Left:     active[0],
		Right:    active[1],
		LeftLen:  raw / 2,
		RightLen: raw / 2,
	})

	return out, nil
}
