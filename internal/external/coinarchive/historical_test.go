package coinarchive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmlee/dcalab/pkg/httputil"
	"github.com/jmlee/dcalab/pkg/logger"
)

const historicalHTML = `<html><body>
<table>
  <thead><tr><th>Rank</th><th>Coin</th></tr></thead>
  <tbody><tr><td>1</td><td>BTC</td></tr></tbody>
</table>
<table>
  <thead><tr><th>Date</th><th>Open</th><th>Close</th></tr></thead>
  <tbody>
    <tr><th>2024-01-03</th><td>$43,100.20</td><td>$42,850.10</td></tr>
    <tr><th>2024-01-02</th><td>$44,200.00</td><td>$43,100.20</td></tr>
    <tr><th>2024-01-01</th><td>$42,000.00</td><td>$44,200.00</td></tr>
    <tr><th>2023-12-31</th><td>-</td><td>N/A</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseHistoricalTable(t *testing.T) {
	points, err := parseHistoricalTable(historicalHTML)
	if err != nil {
		t.Fatalf("parseHistoricalTable failed: %v", err)
	}

	// The N/A row is skipped
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	if points[0].Price != 42850.10 {
		t.Errorf("points[0].Price = %v, want 42850.10", points[0].Price)
	}
	want := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	if !points[0].Date.Equal(want) {
		t.Errorf("points[0].Date = %v, want %v", points[0].Date, want)
	}
}

func TestParseHistoricalTableNoPriceTable(t *testing.T) {
	html := `<html><body><table>
	  <thead><tr><th>Rank</th><th>Coin</th></tr></thead>
	  <tbody><tr><td>1</td><td>BTC</td></tr></tbody>
	</table></body></html>`

	if _, err := parseHistoricalTable(html); err == nil {
		t.Errorf("expected error when no price table is present")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2024-01-15", true},
		{"Jan 15, 2024", true},
		{"2024.01.15", true},
		{" 2024-01-15 ", true},
		{"15/01/2024", false},
		{"", false},
	}

	for _, tt := range tests {
		if _, ok := parseDate(tt.input); ok != tt.ok {
			t.Errorf("parseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"$42,850.10", 42850.10, true},
		{"100", 100, true},
		{" $1,000 ", 1000, true},
		{"-", 0, false},
		{"N/A", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePrice(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parsePrice(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFetchHistoricalSortsAscending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/en/coins/bitcoin/historical_data" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(historicalHTML))
	}))
	defer server.Close()

	log := logger.NewWriter(io.Discard)
	client := NewClient(httputil.New(log), log, server.URL)

	points, err := client.FetchHistorical(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("FetchHistorical failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for i := 1; i < len(points); i++ {
		if !points[i-1].Date.Before(points[i].Date) {
			t.Errorf("points not in ascending date order at %d", i)
		}
	}
}

func TestFetchHistoricalRequiresSlug(t *testing.T) {
	log := logger.NewWriter(io.Discard)
	client := NewClient(httputil.New(log), log, "")

	if _, err := client.FetchHistorical(context.Background(), ""); err == nil {
		t.Errorf("expected error for empty slug")
	}
}
