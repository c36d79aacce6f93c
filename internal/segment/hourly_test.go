package segment

import (
	"math"
	"testing"
	"time"
)

func TestGroupByHourFlat(t *testing.T) {
	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("four quarter hours make one bucket", func(t *testing.T) {
		buckets := GroupByHour(FlatSeries([]float64{10, 12, 11, 13}), base)

		if len(buckets) != 1 {
			t.Fatalf("got %d buckets, want 1", len(buckets))
		}
		b := buckets[0]
		if b.Hour != 0 || !b.Date.Equal(base) {
			t.Errorf("bucket at %v hour %d, want %v hour 0", b.Date, b.Hour, base)
		}
		if b.Avg != 11.5 {
			t.Errorf("avg = %v, want 11.5", b.Avg)
		}
		if b.Min == nil || *b.Min != 10 {
			t.Errorf("min = %v, want 10", b.Min)
		}
		if b.Max == nil || *b.Max != 13 {
			t.Errorf("max = %v, want 13", b.Max)
		}
		if b.Values != "10,12,11,13" {
			t.Errorf("values = %q, want \"10,12,11,13\"", b.Values)
		}
	})

	t.Run("buckets roll over to the next day", func(t *testing.T) {
		values := make([]float64, 97) // 24 hours plus one quarter
		for i := range values {
			values[i] = float64(i)
		}

		buckets := GroupByHour(FlatSeries(values), base)

		if len(buckets) != 25 {
			t.Fatalf("got %d buckets, want 25", len(buckets))
		}
		last := buckets[24]
		if last.Hour != 0 {
			t.Errorf("last bucket hour = %d, want 0", last.Hour)
		}
		if want := base.AddDate(0, 0, 1); !last.Date.Equal(want) {
			t.Errorf("last bucket date = %v, want %v", last.Date, want)
		}
		if last.Avg != 96 {
			t.Errorf("last bucket avg = %v, want 96", last.Avg)
		}
	})

	t.Run("NaN samples are skipped", func(t *testing.T) {
		buckets := GroupByHour(FlatSeries([]float64{10, math.NaN(), 12, math.NaN()}), base)

		if len(buckets) != 1 {
			t.Fatalf("got %d buckets, want 1", len(buckets))
		}
		if buckets[0].Avg != 11 {
			t.Errorf("avg = %v, want 11", buckets[0].Avg)
		}
		if buckets[0].Values != "10,12" {
			t.Errorf("values = %q, want \"10,12\"", buckets[0].Values)
		}
	})

	t.Run("hour with no numeric samples is omitted", func(t *testing.T) {
		values := []float64{10, 10, 10, 10, math.NaN(), math.NaN(), math.NaN(), math.NaN(), 20, 20, 20, 20}

		buckets := GroupByHour(FlatSeries(values), base)

		if len(buckets) != 2 {
			t.Fatalf("got %d buckets, want 2", len(buckets))
		}
		if buckets[0].Hour != 0 || buckets[1].Hour != 2 {
			t.Errorf("bucket hours = %d, %d, want 0, 2", buckets[0].Hour, buckets[1].Hour)
		}
	})

	t.Run("averages round to four decimals", func(t *testing.T) {
		buckets := GroupByHour(FlatSeries([]float64{1, 1, 1, 1.0001004}), base)

		if len(buckets) != 1 {
			t.Fatalf("got %d buckets, want 1", len(buckets))
		}
		if buckets[0].Avg != 1.0 {
			t.Errorf("avg = %v, want 1.0", buckets[0].Avg)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		buckets := GroupByHour(FlatSeries(nil), base)
		if len(buckets) != 0 {
			t.Errorf("got %d buckets, want 0", len(buckets))
		}
	})
}

func TestGroupByHourAnnotated(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	quarter := func(h, q int) Entry {
		start := day.Add(time.Duration(h)*time.Hour + time.Duration(q)*Interval)
		return Entry{Start: start, End: start.Add(Interval)}
	}

	entries := []Entry{}
	for q, v := range []float64{10, 12, 11, 13} {
		e := quarter(6, q)
		e.Value = v
		entries = append(entries, e)
	}
	e := quarter(7, 0)
	e.Value = 20
	entries = append(entries, e)

	buckets := GroupByHour(AnnotatedSeries(entries), time.Time{})

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].Hour != 6 || buckets[0].Avg != 11.5 {
		t.Errorf("bucket 0 = hour %d avg %v, want hour 6 avg 11.5", buckets[0].Hour, buckets[0].Avg)
	}
	if buckets[0].Min != nil || buckets[0].Max != nil || buckets[0].Values != "" {
		t.Errorf("annotated buckets must only report the average, got %+v", buckets[0])
	}
	if buckets[1].Hour != 7 || buckets[1].Avg != 20 {
		t.Errorf("bucket 1 = hour %d avg %v, want hour 7 avg 20", buckets[1].Hour, buckets[1].Avg)
	}
	if !buckets[0].Date.Equal(day) {
		t.Errorf("bucket 0 date = %v, want %v", buckets[0].Date, day)
	}
}
