package freight

import (
	"context"
	"fmt"
	"strings"

	pkgLog "ecomart-chatbot/pkg/log"
)

// TableCalculator charges a flat per-unit rate that depends on the destination's macro region.
type TableCalculator struct {
	maxQuantity int
	rates       map[Region]Amount
	l           pkgLog.Logger
}

var _ Calculator = (*TableCalculator)(nil)

// NewTableCalculator creates a TableCalculator. Rates missing from cfg keep their defaults.
func NewTableCalculator(cfg Config, l pkgLog.Logger) (*TableCalculator, error) {
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = DefaultMaxQuantity
	}

	rates := make(map[Region]Amount, len(defaultRates))
	for r, v := range defaultRates {
		rates[r] = v
	}
	for r, v := range cfg.Rates {
		if _, ok := defaultRates[r]; !ok {
			return nil, fmt.Errorf("unknown region %q in freight rates", r)
		}
		if v <= 0 {
			return nil, fmt.Errorf("freight rate for %s must be positive", r)
		}
		rates[r] = v
	}

	return &TableCalculator{
		maxQuantity: cfg.MaxQuantity,
		rates:       rates,
		l:           l,
	}, nil
}

// Calculate returns quantity times the region's per-unit rate.
func (c *TableCalculator) Calculate(ctx context.Context, q Query) (Amount, error) {
	uf := strings.ToUpper(strings.TrimSpace(q.RegionCode))
	region, ok := regionByUF[uf]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRegion, q.RegionCode)
	}
	if q.ProductQuantity <= 0 || q.ProductQuantity > c.maxQuantity {
		return 0, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidQuantity, q.ProductQuantity, c.maxQuantity)
	}

	amount := c.rates[region] * Amount(q.ProductQuantity)
	c.l.Debugf(ctx, "%s: uf=%s region=%s quantity=%d amount=%s", LogPrefixCalculate, uf, region, q.ProductQuantity, amount)
	return amount, nil
}

// RegionOf returns the macro region of a UF code.
func RegionOf(uf string) (Region, bool) {
	r, ok := regionByUF[strings.ToUpper(strings.TrimSpace(uf))]
	return r, ok
}
