package segment

import (
	"math"
	"time"
)

// Interval is the fixed duration one price sample covers. Indices into a
// flat price sequence map to quarter hours from a base time.
const Interval = 15 * time.Minute

// Entry represents one priced interval in annotated form
type Entry struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Value float64   `json:"value"`
}

type seriesKind int

const (
	kindFlat seriesKind = iota
	kindAnnotated
)

// Series is a tagged price sequence: either a flat list of values at fixed
// intervals, or a list of annotated entries carrying their own timestamps.
// The shape is fixed at construction and never re-inspected downstream.
type Series struct {
	kind      seriesKind
	flat      []float64
	annotated []Entry
}

// FlatSeries wraps a flat list of interval prices. Non-numeric samples are
// represented as NaN.
func FlatSeries(values []float64) Series {
	return Series{kind: kindFlat, flat: values}
}

// AnnotatedSeries wraps a list of timestamped price entries.
func AnnotatedSeries(entries []Entry) Series {
	return Series{kind: kindAnnotated, annotated: entries}
}

// IsFlat reports whether the series holds flat interval values.
func (s Series) IsFlat() bool { return s.kind == kindFlat }

// Flat returns the underlying flat values (nil for annotated series).
func (s Series) Flat() []float64 { return s.flat }

// Annotated returns the underlying entries (nil for flat series).
func (s Series) Annotated() []Entry { return s.annotated }

// Len returns the number of samples in the series.
func (s Series) Len() int {
	if s.kind == kindAnnotated {
		return len(s.annotated)
	}
	return len(s.flat)
}

// isNumeric reports whether a sample takes part in comparisons and averages.
func isNumeric(v float64) bool {
	return !math.IsNaN(v)
}

// indexSet tracks which indices of a sequence have been claimed by a
// sublist expansion. It is threaded explicitly through the expansion steps
// so ownership transitions stay visible at every call site.
type indexSet []bool

func newIndexSet(n int) indexSet { return make(indexSet, n) }

func (s indexSet) has(i int) bool { return i >= 0 && i < len(s) && s[i] }

func (s indexSet) claim(i int) { s[i] = true }
