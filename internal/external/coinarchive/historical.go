package coinarchive

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmlee/dcalab/internal/market"
)

var dateLayouts = []string{"2006-01-02", "Jan 02, 2006", "2006.01.02"}

// FetchHistorical scrapes the historical data table for a coin and
// returns daily price points in chronological order.
func (c *Client) FetchHistorical(ctx context.Context, coinSlug string) ([]market.PricePoint, error) {
	if coinSlug == "" {
		return nil, fmt.Errorf("coin slug is required")
	}

	path := fmt.Sprintf("/en/coins/%s/historical_data", coinSlug)
	html, err := c.fetchHTML(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch historical page for %s: %w", coinSlug, err)
	}

	points, err := parseHistoricalTable(html)
	if err != nil {
		return nil, fmt.Errorf("parse historical page for %s: %w", coinSlug, err)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	c.logger.WithFields(map[string]interface{}{
		"coin":  coinSlug,
		"count": len(points),
	}).Debug("Scraped historical prices")

	return points, nil
}

// parseHistoricalTable extracts (date, close) rows from the first
// table whose header contains a Date and a Close column.
func parseHistoricalTable(html string) ([]market.PricePoint, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var points []market.PricePoint

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		dateCol, closeCol := -1, -1
		table.Find("thead th").Each(func(i int, th *goquery.Selection) {
			switch strings.ToLower(strings.TrimSpace(th.Text())) {
			case "date":
				dateCol = i
			case "close", "price":
				closeCol = i
			}
		})
		if dateCol < 0 || closeCol < 0 {
			return true // not the price table, keep looking
		}

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("th, td")
			if cells.Length() <= dateCol || cells.Length() <= closeCol {
				return
			}

			date, ok := parseDate(cells.Eq(dateCol).Text())
			if !ok {
				return
			}
			price, ok := parsePrice(cells.Eq(closeCol).Text())
			if !ok || price <= 0 {
				return
			}

			points = append(points, market.PricePoint{Date: date, Price: price})
		})

		return false
	})

	if len(points) == 0 {
		return nil, fmt.Errorf("no price rows found")
	}

	return points, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" || s == "N/A" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
