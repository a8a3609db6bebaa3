package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/jmlee/dcalab/internal/market"
)

// marketChartResponse is the shape of /coins/{id}/market_chart.
// Each entry is a [unix_millis, value] pair.
type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// FetchDailyPrices fetches up to `days` days of daily closing prices
// for a coin. Intraday points returned by the API are collapsed to one
// point per calendar day, keeping the last observation.
func (c *Client) FetchDailyPrices(ctx context.Context, coinID, vsCurrency string, days int) ([]market.PricePoint, error) {
	if coinID == "" {
		return nil, fmt.Errorf("coin id is required")
	}
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	if days <= 0 {
		days = 365
	}

	params := url.Values{}
	params.Set("vs_currency", vsCurrency)
	params.Set("days", strconv.Itoa(days))
	params.Set("interval", "daily")

	var chart marketChartResponse
	path := fmt.Sprintf("/coins/%s/market_chart", url.PathEscape(coinID))
	if err := c.getJSON(ctx, path, params, &chart); err != nil {
		return nil, fmt.Errorf("fetch market chart for %s: %w", coinID, err)
	}

	byDay := make(map[string]market.PricePoint)
	for _, pair := range chart.Prices {
		if len(pair) < 2 {
			continue
		}
		ts := time.UnixMilli(int64(pair[0])).UTC()
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		byDay[day.Format("2006-01-02")] = market.PricePoint{Date: day, Price: pair[1]}
	}

	points := make([]market.PricePoint, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	if len(points) == 0 {
		return nil, fmt.Errorf("no prices returned for %s", coinID)
	}

	c.logger.WithFields(map[string]interface{}{
		"coin_id": coinID,
		"days":    days,
		"count":   len(points),
	}).Debug("Fetched daily prices")

	return points, nil
}
