// Package pricelist assembles and decodes caller-supplied price data into
// the series shapes the segment package consumes.
package pricelist

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"pricepeaks/internal/segment"
)

// Combine joins today's entries with tomorrow's, taking tomorrow only when
// the supplier has flagged it valid. Day-ahead prices for tomorrow are
// often published late or not at all, so validity travels as an explicit
// flag next to the data.
func Combine(today, tomorrow []segment.Entry, tomorrowValid bool) []segment.Entry {
	out := make([]segment.Entry, 0, len(today)+len(tomorrow))
	out = append(out, today...)
	if tomorrowValid {
		out = append(out, tomorrow...)
	}
	return out
}

// entryDoc mirrors segment.Entry with a nullable value so gaps in supplied
// data decode to NaN instead of failing.
type entryDoc struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Value *float64  `json:"value"`
}

func (d entryDoc) entry() segment.Entry {
	e := segment.Entry{Start: d.Start, End: d.End, Value: math.NaN()}
	if d.Value != nil {
		e.Value = *d.Value
	}
	return e
}

// Decode classifies and decodes a JSON price document into a tagged series.
// The document is either a flat array of numbers (null marks a missing
// sample) or an array of {start,end,value} records. This is the single
// place where the input shape is decided; downstream code only sees the
// tagged Series.
func Decode(r io.Reader) (segment.Series, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return segment.Series{}, fmt.Errorf("decoding price document: %w", err)
	}
	if len(raw) == 0 {
		return segment.FlatSeries(nil), nil
	}

	if firstByte(raw[0]) == '{' {
		entries := make([]segment.Entry, 0, len(raw))
		for i, msg := range raw {
			var d entryDoc
			if err := json.Unmarshal(msg, &d); err != nil {
				return segment.Series{}, fmt.Errorf("decoding price entry %d: %w", i, err)
			}
			entries = append(entries, d.entry())
		}
		return segment.AnnotatedSeries(entries), nil
	}

	values := make([]float64, 0, len(raw))
	for i, msg := range raw {
		if string(msg) == "null" {
			values = append(values, math.NaN())
			continue
		}
		var v float64
		if err := json.Unmarshal(msg, &v); err != nil {
			return segment.Series{}, fmt.Errorf("decoding price value %d: %w", i, err)
		}
		values = append(values, v)
	}
	return segment.FlatSeries(values), nil
}

// daysDoc is the combined document shape a day-ahead price supplier
// publishes: today's entries, tomorrow's entries, and the validity flag.
type daysDoc struct {
	Today         []entryDoc `json:"today"`
	Tomorrow      []entryDoc `json:"tomorrow"`
	TomorrowValid bool       `json:"tomorrow_valid"`
}

// DecodeDays decodes a {today, tomorrow, tomorrow_valid} document.
func DecodeDays(r io.Reader) (today, tomorrow []segment.Entry, tomorrowValid bool, err error) {
	var doc daysDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, false, fmt.Errorf("decoding day-ahead document: %w", err)
	}
	for _, d := range doc.Today {
		today = append(today, d.entry())
	}
	for _, d := range doc.Tomorrow {
		tomorrow = append(tomorrow, d.entry())
	}
	return today, tomorrow, doc.TomorrowValid, nil
}

func firstByte(msg json.RawMessage) byte {
	for _, b := range msg {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
