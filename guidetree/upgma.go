package guidetree

// UPGMA clusters a distance matrix by repeated merging of the pair with
// the minimum average inter-cluster distance.
//
// The implementation runs on an explicit cluster arena indexed by
// integer id (no recursion): leaf ids 0..N-1 are active at the start,
// every merge retires two ids and activates a fresh synthetic id. The
// distance of a merged cluster to every remaining cluster is the
// size-weighted average of its children's distances; branch lengths are
// half the merge distance minus each child's accumulated depth
// (ultrametric).
//
// Determinism: candidate pairs are scanned in ascending id order and a
// strictly smaller distance is required to displace the incumbent, so
// ties resolve to the earliest pair.
//
// Complexity: O(N^2) per merge, O(N^3) total; memory O(N^2).
func UPGMA(dist [][]float64) ([]Merge, error) {
	if err := checkMatrix(dist); err != nil {
		return nil, err
	}
	n := len(dist)
	if n < 2 {
		return nil, nil
	}

	size := make(map[int]int, n)
	depth := make(map[int]float64, n)
	active := make([]int, n)
	d := make(map[[2]int]float64, n*n/2)
	for i := 0; i < n; i++ {
		active[i] = i
		size[i] = 1
		for j := i + 1; j < n; j++ {
			d[pairKey(i, j)] = dist[i][j]
		}
	}

	out := make([]Merge, 0, n-1)
	next := n
	for len(active) > 1 {
		// Locate the closest active pair.
		var (
			bi, bj = -1, -1
			bd     float64
		)
		for x := 0; x < len(active); x++ {
			for y := x + 1; y < len(active); y++ {
				cur := d[pairKey(active[x], active[y])]
				if bi < 0 || cur < bd {
					bi, bj, bd = active[x], active[y], cur
				}
			}
		}

		out = append(out, Merge{
			Left:     bi,
			Right:    bj,
			LeftLen:  bd/2 - depth[bi],
			RightLen: bd/2 - depth[bj],
		})

		// Activate the merged cluster and rewire distances.
		size[next] = size[bi] + size[bj]
		depth[next] = bd / 2
		sa, sb := float64(size[bi]), float64(size[bj])
		for _, o := range active {
			if o == bi || o == bj {
				continue
			}
			d[pairKey(next, o)] = (sa*d[pairKey(bi, o)] + sb*d[pairKey(bj, o)]) / (sa + sb)
		}
		active = retire(active, bi, bj, next)
		next++
	}

	return out, nil
}

// retire removes two ids from the active list and appends the new one,
// preserving ascending scan order for determinism.
func retire(active []int, a, b, fresh int) []int {
	out := active[:0]
	for _, id := range active {
		if id != a && id != b {
			out = append(out, id)
		}
	}

	return append(out, fresh)
}
