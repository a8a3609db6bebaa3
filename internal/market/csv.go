package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// CSV layout written by the fetcher: timestamp,price,date
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// LoadCSV reads a price history CSV and builds a validated Series.
// The file must have a header row with at least "price" and "date" columns.
func LoadCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read price file: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("price file %s has no data rows", path)
	}

	header := records[0]
	priceCol, dateCol := -1, -1
	for i, name := range header {
		switch name {
		case "price":
			priceCol = i
		case "date":
			dateCol = i
		}
	}
	if priceCol < 0 || dateCol < 0 {
		return nil, fmt.Errorf("price file %s missing price/date columns", path)
	}

	points := make([]PricePoint, 0, len(records)-1)
	for n, row := range records[1:] {
		price, err := strconv.ParseFloat(row[priceCol], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q: %w", n+2, row[priceCol], err)
		}

		date, err := parseDate(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", n+2, row[dateCol], err)
		}

		points = append(points, PricePoint{Date: date, Price: price})
	}

	series, err := NewSeries(points)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	return series, nil
}

// WriteCSV writes points in the layout LoadCSV reads back
func WriteCSV(path string, points []PricePoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create price file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "price", "date"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range points {
		row := []string{
			strconv.FormatInt(p.Date.UnixMilli(), 10),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			p.Date.Format("2006-01-02"),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}
