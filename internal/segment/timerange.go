package segment

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrTimeRangeFormat signals that a time-range string does not match the
// expected pattern or carries unparseable components.
var ErrTimeRangeFormat = errors.New("invalid time range format")

// timeRangePattern matches both the canonical "HH:MM+DD-HH:MM+DD" form and
// the legacy "HH:MM-HH:MM" form in one pass, so a single parse decides the
// format and anchors the separating hyphen unambiguously even when a
// negative day offset contributes extra hyphens.
var timeRangePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})([+-]\d{2})?-(\d{1,2}):(\d{2})([+-]\d{2})?$`)

// IndicesToTimeRanges encodes each index list as time-range strings. Each
// index covers one Interval from base; strictly consecutive indices are
// grouped into runs, and each run becomes one "HH:MM+DD-HH:MM+DD" string
// spanning [base+Interval*first, base+Interval*(last+1)). Day offsets count
// calendar days from base's date, zero-padded and signed.
func IndicesToTimeRanges(indexLists [][]int, base time.Time) [][]string {
	if base.IsZero() {
		base = midnight(time.Now())
	}
	out := make([][]string, 0, len(indexLists))
	for _, indices := range indexLists {
		var ranges []string
		for i := 0; i < len(indices); {
			j := i
			for j+1 < len(indices) && indices[j+1] == indices[j]+1 {
				j++
			}
			start := base.Add(time.Duration(indices[i]) * Interval)
			end := base.Add(time.Duration(indices[j]+1) * Interval)
			ranges = append(ranges, formatTimeRange(start, end, base))
			i = j + 1
		}
		out = append(out, ranges)
	}
	return out
}

func formatTimeRange(start, end, base time.Time) string {
	return fmt.Sprintf("%s%+03d-%s%+03d",
		start.Format("15:04"), dayOffset(base, start),
		end.Format("15:04"), dayOffset(base, end))
}

// dayOffset returns the calendar-day distance from base's date to t's date.
// Both dates are rebuilt in UTC so a DST transition cannot skew the count.
func dayOffset(base, t time.Time) int {
	b := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(b).Hours() / 24)
}

// ParseTimeRange decodes a time-range string into (start, end) instants on
// the calendar of ref, which is truncated to midnight before day offsets
// apply. A zero ref means today. Both the canonical day-offset format and
// the legacy offset-free format are accepted; for a legacy string whose end
// does not lie after its start, the end rolls over to the next day (ranges
// like "23:00-01:00" are overnight).
func ParseTimeRange(s string, ref time.Time) (time.Time, time.Time, error) {
	if ref.IsZero() {
		ref = time.Now()
	}
	m := timeRangePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q does not match \"HH:MM[+DD]-HH:MM[+DD]\"", ErrTimeRangeFormat, s)
	}
	day := midnight(ref)

	start, err := endpointTime(day, m[1], m[2], m[3])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q: %v", ErrTimeRangeFormat, s, err)
	}
	end, err := endpointTime(day, m[4], m[5], m[6])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q: %v", ErrTimeRangeFormat, s, err)
	}

	// Wraparound inference applies only when the whole string is legacy,
	// not merely when one endpoint lacks an offset.
	legacy := m[3] == "" && m[6] == ""
	if legacy && !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

func endpointTime(day time.Time, hh, mm, off string) (time.Time, error) {
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return time.Time{}, fmt.Errorf("hour %q: %v", hh, err)
	}
	if hour > 23 {
		return time.Time{}, fmt.Errorf("hour %d out of range", hour)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return time.Time{}, fmt.Errorf("minute %q: %v", mm, err)
	}
	if minute > 59 {
		return time.Time{}, fmt.Errorf("minute %d out of range", minute)
	}
	days := 0
	if off != "" {
		days, err = strconv.Atoi(off)
		if err != nil {
			return time.Time{}, fmt.Errorf("day offset %q: %v", off, err)
		}
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
	return t.AddDate(0, 0, days), nil
}

// midnight truncates t to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
