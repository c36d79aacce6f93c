package segment

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const quartersPerHour = int(time.Hour / Interval)

// HourlyBucket aggregates the interval samples of one wall-clock hour.
// Flat series fill in Min, Max and the comma-joined raw Values; annotated
// series report only the averaged value.
type HourlyBucket struct {
	Date   time.Time `json:"date"`
	Hour   int       `json:"hour"`
	Avg    float64   `json:"avg"`
	Min    *float64  `json:"min,omitempty"`
	Max    *float64  `json:"max,omitempty"`
	Values string    `json:"values,omitempty"`
}

// GroupByHour regroups a price series into per-hour statistics. Flat
// samples are placed on a running clock of Interval steps from base
// (midnight today when base is zero); annotated entries bucket by their
// start time truncated to the hour. NaN samples are skipped, and an hour
// with no numeric samples is omitted. Empty input yields an empty result.
func GroupByHour(s Series, base time.Time) []HourlyBucket {
	if s.IsFlat() {
		return groupFlatByHour(s.Flat(), base)
	}
	return groupAnnotatedByHour(s.Annotated())
}

func groupFlatByHour(xs []float64, base time.Time) []HourlyBucket {
	if base.IsZero() {
		base = midnight(time.Now())
	}
	out := []HourlyBucket{}
	for i := 0; i < len(xs); {
		hourIdx := i / quartersPerHour
		j := i
		var values []float64
		var raw []string
		for ; j < len(xs) && j/quartersPerHour == hourIdx; j++ {
			if !isNumeric(xs[j]) {
				continue
			}
			values = append(values, xs[j])
			raw = append(raw, strconv.FormatFloat(xs[j], 'g', -1, 64))
		}
		i = j
		if len(values) == 0 {
			continue
		}

		minV, maxV, sum := values[0], values[0], 0.0
		for _, v := range values {
			sum += v
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
		minV = round4(minV)
		maxV = round4(maxV)

		out = append(out, HourlyBucket{
			Date:   base.AddDate(0, 0, hourIdx/24),
			Hour:   hourIdx % 24,
			Avg:    round4(sum / float64(len(values))),
			Min:    &minV,
			Max:    &maxV,
			Values: strings.Join(raw, ","),
		})
	}
	return out
}

func groupAnnotatedByHour(entries []Entry) []HourlyBucket {
	type acc struct {
		sum   float64
		count int
	}
	out := []HourlyBucket{}
	byHour := map[time.Time]*acc{}
	var order []time.Time

	for _, e := range entries {
		if !isNumeric(e.Value) {
			continue
		}
		h := time.Date(e.Start.Year(), e.Start.Month(), e.Start.Day(), e.Start.Hour(), 0, 0, 0, e.Start.Location())
		a, ok := byHour[h]
		if !ok {
			a = &acc{}
			byHour[h] = a
			order = append(order, h)
		}
		a.sum += e.Value
		a.count++
	}

	for _, h := range order {
		a := byHour[h]
		out = append(out, HourlyBucket{
			Date: midnight(h),
			Hour: h.Hour(),
			Avg:  round4(a.sum / float64(a.count)),
		})
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
