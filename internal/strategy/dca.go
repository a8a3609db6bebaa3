package strategy

import (
	"github.com/jmlee/dcalab/internal/market"
)

// DCA invests a fixed amount every period regardless of price.
type DCA struct {
	base float64
}

// NewDCA creates a fixed periodic investment rule
func NewDCA(base float64) *DCA {
	return &DCA{base: base}
}

func (d *DCA) Name() string { return "DCA" }

func (d *DCA) Kind() Kind { return KindDCA }

func (d *DCA) Prepare(_ *market.Series) error { return nil }

func (d *DCA) Amount(_ int) float64 { return d.base }
