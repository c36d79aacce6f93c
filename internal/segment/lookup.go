package segment

import "time"

// Period describes a run of consecutive entries with their mean price.
type Period struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	AveragePrice float64   `json:"average_price"`
}

// PriceAt returns the value of the first entry whose interval contains at
// (start inclusive, end exclusive). The second result is false when no
// entry matches.
func PriceAt(entries []Entry, at time.Time) (float64, bool) {
	for _, e := range entries {
		if !e.Start.After(at) && at.Before(e.End) {
			return e.Value, true
		}
	}
	return 0, false
}

// LowestPeriod slides a window of durationHours consecutive entries over
// the list and returns the window with the lowest mean value; the earliest
// window wins ties. Non-numeric values do not count toward a window's mean,
// and a window with no numeric values is never selected. It returns nil
// when durationHours < 1 or the list is shorter than the window.
func LowestPeriod(entries []Entry, durationHours int) *Period {
	if durationHours < 1 || len(entries) < durationHours {
		return nil
	}
	var best *Period
	for i := 0; i+durationHours <= len(entries); i++ {
		window := entries[i : i+durationHours]
		sum, count := 0.0, 0
		for _, e := range window {
			if !isNumeric(e.Value) {
				continue
			}
			sum += e.Value
			count++
		}
		// A window with no numeric samples has no mean to compare.
		if count == 0 {
			continue
		}
		avg := sum / float64(count)
		if best == nil || avg < best.AveragePrice {
			best = &Period{
				Start:        window[0].Start,
				End:          window[len(window)-1].End,
				AveragePrice: avg,
			}
		}
	}
	return best
}
