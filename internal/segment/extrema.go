package segment

// FindLocalMaxima returns the ascending indices of all local maxima in xs.
// An interior sample is a maximum when it is strictly greater than both
// numeric neighbors; a boundary sample only has to beat its single
// neighbor. NaN samples never compare greater than anything, so they are
// skipped without failing.
func FindLocalMaxima(xs []float64) []int {
	return findExtrema(xs, func(a, b float64) bool { return a > b })
}

// FindLocalMinima returns the ascending indices of all local minima in xs,
// using the symmetric strictly-less rule.
func FindLocalMinima(xs []float64) []int {
	return findExtrema(xs, func(a, b float64) bool { return a < b })
}

func findExtrema(xs []float64, beats func(a, b float64) bool) []int {
	switch len(xs) {
	case 0:
		return nil
	case 1:
		// A lone numeric sample is trivially its own extremum.
		if isNumeric(xs[0]) {
			return []int{0}
		}
		return nil
	}

	var out []int
	last := len(xs) - 1

	// NaN comparisons are always false, so non-numeric samples and their
	// neighbors drop out of the result without extra branching.
	if beats(xs[0], xs[1]) {
		out = append(out, 0)
	}
	for i := 1; i < last; i++ {
		if beats(xs[i], xs[i-1]) && beats(xs[i], xs[i+1]) {
			out = append(out, i)
		}
	}
	if beats(xs[last], xs[last-1]) {
		out = append(out, last)
	}
	return out
}
