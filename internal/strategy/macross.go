package strategy

import (
	"sort"

	"github.com/jmlee/dcalab/internal/market"
)

// MACross scales the base investment when price trades below one of the
// configured moving averages. Windows are checked shortest first; the
// first average the price is strictly below supplies the multiplier,
// defaulting to 1 when price is above them all.
type MACross struct {
	base        float64
	windows     []int
	multipliers map[int]float64

	series *market.Series
	sma    map[int][]float64
	smaOK  map[int][]bool
}

// NewMACross creates a moving-average-multiplier rule.
// multipliers maps window length (days) -> investment multiplier.
func NewMACross(base float64, multipliers map[int]float64) *MACross {
	windows := make([]int, 0, len(multipliers))
	for w := range multipliers {
		windows = append(windows, w)
	}
	sort.Ints(windows)

	return &MACross{
		base:        base,
		windows:     windows,
		multipliers: multipliers,
	}
}

func (m *MACross) Name() string { return "MA Momentum" }

func (m *MACross) Kind() Kind { return KindMACross }

func (m *MACross) Prepare(s *market.Series) error {
	m.series = s
	m.sma = make(map[int][]float64, len(m.windows))
	m.smaOK = make(map[int][]bool, len(m.windows))
	for _, w := range m.windows {
		m.sma[w], m.smaOK[w] = SMA(s, w)
	}
	return nil
}

func (m *MACross) Amount(i int) float64 {
	price := m.series.Price(i)

	for _, w := range m.windows {
		if !m.smaOK[w][i] {
			continue
		}
		if price < m.sma[w][i] {
			return m.base * m.multipliers[w]
		}
	}

	return m.base
}
