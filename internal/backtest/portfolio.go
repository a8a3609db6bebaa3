package backtest

import (
	"time"
)

// State is the portfolio snapshot for a single date.
type State struct {
	Date        time.Time `json:"date"`
	Investment  float64   `json:"investment"`   // capital deployed this period
	AssetBought float64   `json:"asset_bought"` // units bought this period
	AssetHeld   float64   `json:"asset_held"`   // cumulative units held
	Invested    float64   `json:"invested"`     // cumulative capital deployed
	Value       float64   `json:"value"`        // AssetHeld * price
}

// Portfolio is the day-by-day trajectory produced by one strategy run.
// It is aligned 1:1 with the price series it was simulated against and
// never mutated after the run completes.
type Portfolio struct {
	Strategy string  `json:"strategy"`
	States   []State `json:"states"`
}

// Len returns the number of periods
func (p *Portfolio) Len() int {
	return len(p.States)
}

// Final returns the last state
func (p *Portfolio) Final() State {
	return p.States[len(p.States)-1]
}

// TotalInvested returns the cumulative capital deployed over the run
func (p *Portfolio) TotalInvested() float64 {
	return p.Final().Invested
}

// FinalValue returns the portfolio value at the last date
func (p *Portfolio) FinalValue() float64 {
	return p.Final().Value
}

// Values returns the portfolio value series
func (p *Portfolio) Values() []float64 {
	values := make([]float64, len(p.States))
	for i, s := range p.States {
		values[i] = s.Value
	}
	return values
}
