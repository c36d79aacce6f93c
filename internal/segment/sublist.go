package segment

import "sort"

// SplitAtMaxima carves xs into up to maxSublists high-price sublists, each
// grown outward from a local maximum. A sample joins a sublist only while
// its value stays at or above the overall average of the sequence; growth
// also stops at local minima and, when targetLength is positive, at that
// length. Every index is claimed by at most one sublist per call.
//
// The returned sublists are ranked by descending total value and come with
// their parallel index lists. Degenerate inputs (empty sequence,
// non-positive maxSublists, no numeric samples, no maxima) yield (nil, nil).
func SplitAtMaxima(xs []float64, maxSublists, targetLength int) ([][]float64, [][]int) {
	if len(xs) == 0 || maxSublists <= 0 {
		return nil, nil
	}
	avg, ok := meanNumeric(xs)
	if !ok {
		return nil, nil
	}
	maxima := FindLocalMaxima(xs)
	if len(maxima) == 0 {
		return nil, nil
	}

	// Minima act as expansion barriers only; they never seed a sublist.
	minima := make(map[int]bool)
	for _, i := range FindLocalMinima(xs) {
		minima[i] = true
	}

	used := newIndexSet(len(xs))
	var sublists [][]float64
	var indexLists [][]int

	for _, seed := range maxima {
		if used.has(seed) {
			continue
		}
		window, indices := expand(xs, seed, avg, targetLength, minima, used)
		if maxNumeric(window) < avg {
			// Cannot happen for a seeded maximum above the average, but a
			// maximum below it produces a window we must not keep.
			continue
		}
		sublists = append(sublists, window)
		indexLists = append(indexLists, indices)
	}

	// Every seed can fall below the average; report that the same way as
	// the other degenerate inputs.
	if len(sublists) == 0 {
		return nil, nil
	}

	order := make([]int, len(sublists))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps the ascending-maxima build order on equal totals,
	// so results are deterministic.
	sort.SliceStable(order, func(a, b int) bool {
		return sumNumeric(sublists[order[a]]) > sumNumeric(sublists[order[b]])
	})
	if len(order) > maxSublists {
		order = order[:maxSublists]
	}

	rankedLists := make([][]float64, len(order))
	rankedIndices := make([][]int, len(order))
	for i, j := range order {
		rankedLists[i] = sublists[j]
		rankedIndices[i] = indexLists[j]
	}
	return rankedLists, rankedIndices
}

// Split is the convenience wrapper: a positive sublistLength caps each
// sublist at that many samples, anything else leaves growth uncapped.
func Split(xs []float64, sublistLength, n int) ([][]float64, [][]int) {
	if sublistLength > 0 {
		return SplitAtMaxima(xs, n, sublistLength)
	}
	return SplitAtMaxima(xs, n, 0)
}

// expand grows a window outward from seed, claiming indices in used as it
// goes. Pointers skip indices already claimed by earlier expansions, so a
// window's index list can jump over claimed runs while staying ascending.
func expand(xs []float64, seed int, avg float64, targetLength int, minima map[int]bool, used indexSet) ([]float64, []int) {
	window := []float64{xs[seed]}
	indices := []int{seed}
	used.claim(seed)

	fwd := nextUnclaimed(used, seed, +1)
	bwd := nextUnclaimed(used, seed, -1)

	for {
		if targetLength > 0 && len(window) >= targetLength {
			break
		}
		fwdOK := eligible(xs, fwd, avg, minima, used)
		bwdOK := eligible(xs, bwd, avg, minima, used)
		if !fwdOK && !bwdOK {
			break
		}
		// Take the larger eligible value; ties go forward.
		if fwdOK && (!bwdOK || xs[fwd] >= xs[bwd]) {
			window = append(window, xs[fwd])
			indices = append(indices, fwd)
			used.claim(fwd)
			fwd = nextUnclaimed(used, fwd, +1)
		} else {
			window = append([]float64{xs[bwd]}, window...)
			indices = append([]int{bwd}, indices...)
			used.claim(bwd)
			bwd = nextUnclaimed(used, bwd, -1)
		}
	}
	return window, indices
}

// eligible reports whether index i may join a window: in bounds, numeric,
// unclaimed, at or above the overall average, and not a local minimum.
// Minima block expansion regardless of their value.
func eligible(xs []float64, i int, avg float64, minima map[int]bool, used indexSet) bool {
	if i < 0 || i >= len(xs) || used.has(i) {
		return false
	}
	if !isNumeric(xs[i]) || xs[i] < avg {
		return false
	}
	return !minima[i]
}

// nextUnclaimed advances from i in the given direction past every claimed
// index. The result may be out of bounds; eligible handles that.
func nextUnclaimed(used indexSet, i, step int) int {
	i += step
	for i >= 0 && i < len(used) && used.has(i) {
		i += step
	}
	return i
}

func meanNumeric(xs []float64) (float64, bool) {
	sum, count := 0.0, 0
	for _, v := range xs {
		if isNumeric(v) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func sumNumeric(xs []float64) float64 {
	sum := 0.0
	for _, v := range xs {
		if isNumeric(v) {
			sum += v
		}
	}
	return sum
}

func maxNumeric(xs []float64) float64 {
	best := 0.0
	found := false
	for _, v := range xs {
		if isNumeric(v) && (!found || v > best) {
			best = v
			found = true
		}
	}
	if !found {
		return 0
	}
	return best
}
