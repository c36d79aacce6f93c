package pricelist

import (
	"math"
	"strings"
	"testing"
	"time"

	"pricepeaks/internal/segment"
)

func TestCombine(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	today := []segment.Entry{{Start: day, End: day.Add(time.Hour), Value: 10}}
	tomorrow := []segment.Entry{{Start: day.AddDate(0, 0, 1), End: day.AddDate(0, 0, 1).Add(time.Hour), Value: 20}}

	tests := []struct {
		name          string
		tomorrowValid bool
		wantLen       int
	}{
		{name: "tomorrow valid", tomorrowValid: true, wantLen: 2},
		{name: "tomorrow not yet published", tomorrowValid: false, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(today, tomorrow, tt.tomorrowValid)
			if len(got) != tt.wantLen {
				t.Fatalf("got %d entries, want %d", len(got), tt.wantLen)
			}
			if got[0].Value != 10 {
				t.Errorf("first entry value = %v, want 10", got[0].Value)
			}
			if tt.tomorrowValid && got[1].Value != 20 {
				t.Errorf("second entry value = %v, want 20", got[1].Value)
			}
		})
	}
}

func TestDecodeFlat(t *testing.T) {
	series, err := Decode(strings.NewReader(`[10, 12.5, null, 13]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !series.IsFlat() {
		t.Fatal("numeric array must classify as a flat series")
	}
	values := series.Flat()
	if len(values) != 4 {
		t.Fatalf("got %d values, want 4", len(values))
	}
	if values[0] != 10 || values[1] != 12.5 || values[3] != 13 {
		t.Errorf("values = %v", values)
	}
	if !math.IsNaN(values[2]) {
		t.Errorf("null must decode to NaN, got %v", values[2])
	}
}

func TestDecodeAnnotated(t *testing.T) {
	doc := `[
		{"start": "2025-01-15T00:00:00Z", "end": "2025-01-15T01:00:00Z", "value": 10},
		{"start": "2025-01-15T01:00:00Z", "end": "2025-01-15T02:00:00Z", "value": null}
	]`

	series, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if series.IsFlat() {
		t.Fatal("record array must classify as an annotated series")
	}
	entries := series.Annotated()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Value != 10 {
		t.Errorf("first value = %v, want 10", entries[0].Value)
	}
	if !math.IsNaN(entries[1].Value) {
		t.Errorf("null value must decode to NaN, got %v", entries[1].Value)
	}
	wantStart := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !entries[0].Start.Equal(wantStart) {
		t.Errorf("first start = %v, want %v", entries[0].Start, wantStart)
	}
}

func TestDecodeEmptyAndInvalid(t *testing.T) {
	series, err := Decode(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !series.IsFlat() || series.Len() != 0 {
		t.Errorf("empty document must classify as an empty flat series")
	}

	if _, err := Decode(strings.NewReader(`{"not": "a list"}`)); err == nil {
		t.Error("non-array document must fail to decode")
	}
	if _, err := Decode(strings.NewReader(`[true]`)); err == nil {
		t.Error("non-numeric array element must fail to decode")
	}
}

func TestDecodeDays(t *testing.T) {
	doc := `{
		"today": [{"start": "2025-01-15T00:00:00Z", "end": "2025-01-15T01:00:00Z", "value": 10}],
		"tomorrow": [{"start": "2025-01-16T00:00:00Z", "end": "2025-01-16T01:00:00Z", "value": 20}],
		"tomorrow_valid": true
	}`

	today, tomorrow, tomorrowValid, err := DecodeDays(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(today) != 1 || len(tomorrow) != 1 || !tomorrowValid {
		t.Fatalf("got today=%d tomorrow=%d valid=%v", len(today), len(tomorrow), tomorrowValid)
	}

	combined := Combine(today, tomorrow, tomorrowValid)
	if len(combined) != 2 {
		t.Errorf("combined = %d entries, want 2", len(combined))
	}
}
