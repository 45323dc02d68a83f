package guidetree

import "sort"

// Flat performs threshold-bounded agglomerative clustering and returns
// the resulting partition as sorted member lists (no tree). It is the
// flat counterpart of the guide-tree builders, used to derive candidate
// sequence groups for iterative refinement.
//
// Merging continues while the closest cluster pair (under the chosen
// linkage) lies strictly below threshold. Leaves that never merge come
// back as singletons; clusters are ordered by their smallest member.
//
// Complexity: O(N^3) worst case over leaf-pair scans; memory O(N).
func Flat(dist [][]float64, threshold float64, link Linkage) ([][]int, error) {
	if err := checkMatrix(dist); err != nil {
		return nil, err
	}
	if threshold < 0 {
		return nil, ErrBadThreshold
	}
	if link < LinkageSingle || link > LinkageAverage {
		return nil, ErrUnknownLinkage
	}
	n := len(dist)
	if n == 0 {
		return nil, nil
	}

	clusters := make([][]int, n)
	for i := range clusters {
		clusters[i] = []int{i}
	}

	for len(clusters) > 1 {
		var (
			bx, by = -1, -1
			bd     float64
		)
		for x := 0; x < len(clusters); x++ {
			for y := x + 1; y < len(clusters); y++ {
				cur := linkDist(dist, clusters[x], clusters[y], link)
				if bx < 0 || cur < bd {
					bx, by, bd = x, y, cur
				}
			}
		}
		if bd >= threshold {
			break
		}

		merged := append(append([]int(nil), clusters[bx]...), clusters[by]...)
		sort.Ints(merged)
		clusters[bx] = merged
		clusters = append(clusters[:by], clusters[by+1:]...)
	}

	sort.Slice(clusters, func(a, b int) bool { return clusters[a][0] < clusters[b][0] })

	return clusters, nil
}

// linkDist computes the linkage distance between two member lists from
// the leaf matrix.
func linkDist(dist [][]float64, a, b []int, link Linkage) float64 {
	var (
		best  float64
		sum   float64
		count float64
		first = true
	)
	for _, i := range a {
		for _, j := range b {
			v := dist[i][j]
			sum += v
			count++
			switch {
			case first:
				best = v
				first = false
			case link == LinkageSingle && v < best:
				best = v
			case link == LinkageComplete && v > best:
				best = v
			}
		}
	}
	if link == LinkageAverage {
		return sum / count
	}

	return best
}
