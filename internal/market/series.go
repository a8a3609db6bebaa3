package market

import (
	"fmt"
	"math"
	"time"
)

// PricePoint is a single dated observation of the asset price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Series is an ordered, date-indexed sequence of asset prices.
// It is immutable once constructed and safe to share across goroutines.
type Series struct {
	points  []PricePoint
	returns []float64 // returns[i] = price[i]/price[i-1] - 1; index 0 undefined
}

// PriceMetrics summarizes the raw price path of a series.
type PriceMetrics struct {
	StartPrice  float64 `json:"start_price"`
	EndPrice    float64 `json:"end_price"`
	PriceReturn float64 `json:"price_return"` // percent
	DownDays    int     `json:"down_days"`
	TotalDays   int     `json:"total_days"`
}

// NewSeries validates the points and builds a Series.
// Dates must be strictly increasing and every price finite and positive.
func NewSeries(points []PricePoint) (*Series, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("price series is empty")
	}

	for i, p := range points {
		if p.Price <= 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return nil, fmt.Errorf("invalid price %v at %s", p.Price, p.Date.Format("2006-01-02"))
		}
		if i > 0 && !points[i-1].Date.Before(p.Date) {
			return nil, fmt.Errorf("dates not strictly increasing at %s", p.Date.Format("2006-01-02"))
		}
	}

	owned := make([]PricePoint, len(points))
	copy(owned, points)

	returns := make([]float64, len(owned))
	for i := 1; i < len(owned); i++ {
		returns[i] = owned[i].Price/owned[i-1].Price - 1
	}

	return &Series{points: owned, returns: returns}, nil
}

// Len returns the number of observations
func (s *Series) Len() int {
	return len(s.points)
}

// Point returns the observation at index i
func (s *Series) Point(i int) PricePoint {
	return s.points[i]
}

// Price returns the price at index i
func (s *Series) Price(i int) float64 {
	return s.points[i].Price
}

// Date returns the date at index i
func (s *Series) Date(i int) time.Time {
	return s.points[i].Date
}

// DailyReturn returns the period-over-period return at index i.
// The return is undefined for the first observation.
func (s *Series) DailyReturn(i int) (float64, bool) {
	if i <= 0 || i >= len(s.returns) {
		return 0, false
	}
	return s.returns[i], true
}

// Metrics computes summary statistics over the raw price path
func (s *Series) Metrics() PriceMetrics {
	downDays := 0
	for i := 1; i < s.Len(); i++ {
		if s.returns[i] < 0 {
			downDays++
		}
	}

	start := s.points[0].Price
	end := s.points[len(s.points)-1].Price

	return PriceMetrics{
		StartPrice:  start,
		EndPrice:    end,
		PriceReturn: (end/start - 1) * 100,
		DownDays:    downDays,
		TotalDays:   s.Len(),
	}
}
