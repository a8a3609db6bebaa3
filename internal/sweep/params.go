package sweep

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jmlee/dcalab/internal/strategy"
)

// Space is the parameter grid for a sweep: one value list per knob.
// Each strategy kind draws only from the lists relevant to it.
type Space struct {
	BaseInvestments []float64 `json:"base_investments"`

	// Dip rule
	DipInvestments []float64           `json:"dip_investments,omitempty"`
	DipThresholds  []float64           `json:"dip_thresholds,omitempty"`
	HoldingPeriods []int               `json:"holding_periods,omitempty"`
	DipTrigger     strategy.DipTrigger `json:"dip_trigger,omitempty"`

	// RSI rule
	RSIPeriods    []int             `json:"rsi_periods,omitempty"`
	RSIThresholds []map[int]float64 `json:"rsi_thresholds,omitempty"`

	// MA rule
	MAMultipliers []map[int]float64 `json:"ma_multipliers,omitempty"`
}

// DefaultSpace mirrors the stock simulation grid
func DefaultSpace() Space {
	return Space{
		BaseInvestments: []float64{100},
		DipInvestments:  []float64{1000},
		DipThresholds:   []float64{0.1},
		HoldingPeriods:  []int{30},
		DipTrigger:      strategy.TriggerRollingHigh,
		RSIPeriods:      []int{14},
		RSIThresholds:   []map[int]float64{{30: 2000, 20: 5000}},
		MAMultipliers:   []map[int]float64{{20: 2, 50: 3}},
	}
}

// Combination is one concrete parameter set tagged with its strategy kind
type Combination struct {
	Kind   strategy.Kind   `json:"kind"`
	Params strategy.Params `json:"params"`
}

// Key returns the canonical cache key: the sorted parameter tuple.
// Identical combinations always map to identical keys.
func (c Combination) Key() string {
	fields := map[string]string{
		"strategy": string(c.Kind),
	}

	switch c.Kind {
	case strategy.KindDCA:
		fields["base"] = formatFloat(c.Params.Base)
	case strategy.KindLumpSum:
		fields["total"] = formatFloat(c.Params.TotalInvestment)
	case strategy.KindDip:
		fields["base"] = formatFloat(c.Params.Base)
		fields["dip_amount"] = formatFloat(c.Params.DipAmount)
		fields["dip_threshold"] = formatFloat(c.Params.DipThreshold)
		fields["holding_period"] = strconv.Itoa(c.Params.HoldingPeriod)
		fields["trigger"] = string(c.Params.Trigger)
	case strategy.KindRSI:
		fields["base"] = formatFloat(c.Params.Base)
		fields["rsi_period"] = strconv.Itoa(c.Params.RSIPeriod)
		fields["rsi_thresholds"] = formatIntMap(c.Params.RSIThresholds)
	case strategy.KindMACross:
		fields["base"] = formatFloat(c.Params.Base)
		fields["ma_multipliers"] = formatIntMap(c.Params.MAMultipliers)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+fields[k])
	}

	return strings.Join(parts, "|")
}

// Combinations enumerates the Cartesian product of the lists relevant
// to the given strategy kind, in the product order of the input lists.
// The order is stable and reproducible.
func Combinations(space Space, kind strategy.Kind) ([]Combination, error) {
	var combos []Combination

	switch kind {
	case strategy.KindDip:
		trigger := space.DipTrigger
		if trigger == "" {
			trigger = strategy.TriggerRollingHigh
		}
		for _, base := range space.BaseInvestments {
			for _, dip := range space.DipInvestments {
				for _, threshold := range space.DipThresholds {
					for _, holding := range space.HoldingPeriods {
						combos = append(combos, Combination{
							Kind: kind,
							Params: strategy.Params{
								Base:          base,
								DipAmount:     dip,
								DipThreshold:  threshold,
								HoldingPeriod: holding,
								Trigger:       trigger,
							},
						})
					}
				}
			}
		}

	case strategy.KindRSI:
		for _, base := range space.BaseInvestments {
			for _, thresholds := range space.RSIThresholds {
				for _, period := range space.RSIPeriods {
					combos = append(combos, Combination{
						Kind: kind,
						Params: strategy.Params{
							Base:          base,
							RSIPeriod:     period,
							RSIThresholds: thresholds,
						},
					})
				}
			}
		}

	case strategy.KindMACross:
		for _, base := range space.BaseInvestments {
			for _, multipliers := range space.MAMultipliers {
				combos = append(combos, Combination{
					Kind: kind,
					Params: strategy.Params{
						Base:          base,
						MAMultipliers: multipliers,
					},
				})
			}
		}

	default:
		return nil, fmt.Errorf("strategy kind %q is not sweepable", kind)
	}

	if len(combos) == 0 {
		return nil, fmt.Errorf("empty parameter space for strategy %q", kind)
	}

	return combos, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatIntMap(m map[int]float64) string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strconv.Itoa(k)+":"+formatFloat(m[k]))
	}
	return strings.Join(parts, ",")
}
