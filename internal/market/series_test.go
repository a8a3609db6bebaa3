package market

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func testSeries(t *testing.T, prices ...float64) *Series {
	t.Helper()

	points := make([]PricePoint, len(prices))
	for i, p := range prices {
		points[i] = PricePoint{Date: day(i), Price: p}
	}

	s, err := NewSeries(points)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}
	return s
}

func TestNewSeriesValidation(t *testing.T) {
	tests := []struct {
		name   string
		points []PricePoint
	}{
		{"empty", nil},
		{"zero price", []PricePoint{{Date: day(0), Price: 0}}},
		{"negative price", []PricePoint{{Date: day(0), Price: -5}}},
		{"nan price", []PricePoint{{Date: day(0), Price: math.NaN()}}},
		{"inf price", []PricePoint{{Date: day(0), Price: math.Inf(1)}}},
		{"duplicate date", []PricePoint{
			{Date: day(0), Price: 100},
			{Date: day(0), Price: 110},
		}},
		{"decreasing date", []PricePoint{
			{Date: day(1), Price: 100},
			{Date: day(0), Price: 110},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSeries(tt.points); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestNewSeriesCopiesInput(t *testing.T) {
	points := []PricePoint{
		{Date: day(0), Price: 100},
		{Date: day(1), Price: 110},
	}

	s, err := NewSeries(points)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}

	points[0].Price = 999
	if s.Price(0) != 100 {
		t.Errorf("series shares memory with caller input")
	}
}

func TestDailyReturn(t *testing.T) {
	s := testSeries(t, 100, 110, 99)

	if _, ok := s.DailyReturn(0); ok {
		t.Errorf("return at index 0 should be undefined")
	}

	r, ok := s.DailyReturn(1)
	if !ok || math.Abs(r-0.10) > 1e-12 {
		t.Errorf("DailyReturn(1) = %v, %v; want 0.10, true", r, ok)
	}

	r, ok = s.DailyReturn(2)
	if !ok || math.Abs(r-(-0.10)) > 1e-12 {
		t.Errorf("DailyReturn(2) = %v, %v; want -0.10, true", r, ok)
	}
}

func TestSingleObservation(t *testing.T) {
	s := testSeries(t, 100)

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if _, ok := s.DailyReturn(0); ok {
		t.Errorf("single observation has no defined return")
	}

	m := s.Metrics()
	if m.PriceReturn != 0 || m.DownDays != 0 || m.TotalDays != 1 {
		t.Errorf("unexpected metrics for single observation: %+v", m)
	}
}

func TestMetrics(t *testing.T) {
	s := testSeries(t, 100, 120, 90, 130)

	m := s.Metrics()
	if m.StartPrice != 100 || m.EndPrice != 130 {
		t.Errorf("start/end = %v/%v, want 100/130", m.StartPrice, m.EndPrice)
	}
	if math.Abs(m.PriceReturn-30) > 1e-9 {
		t.Errorf("PriceReturn = %v, want 30", m.PriceReturn)
	}
	if m.DownDays != 1 {
		t.Errorf("DownDays = %d, want 1", m.DownDays)
	}
	if m.TotalDays != 4 {
		t.Errorf("TotalDays = %d, want 4", m.TotalDays)
	}
}
