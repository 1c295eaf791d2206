package freight

import (
	"context"
	"fmt"
)

// Query is the validated input of a freight computation.
type Query struct {
	ProductQuantity int    `json:"quantidadeProdutos"`
	RegionCode      string `json:"uf"`
}

// Amount is a monetary value in cents.
type Amount int64

// String renders the amount with two decimal places, e.g. 25.50.
func (a Amount) String() string {
	sign := ""
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, a/100, a%100)
}

// Calculator computes the shipping cost for a query.
type Calculator interface {
	Calculate(ctx context.Context, q Query) (Amount, error)
}

// Region is a Brazilian macro region.
type Region string

const (
	RegionNorte       Region = "norte"
	RegionNordeste    Region = "nordeste"
	RegionCentroOeste Region = "centro_oeste"
	RegionSudeste     Region = "sudeste"
	RegionSul         Region = "sul"
)

// Config configures a TableCalculator.
type Config struct {
	// MaxQuantity caps the number of products per query. Zero means DefaultMaxQuantity.
	MaxQuantity int
	// Rates overrides the per-unit rate in cents for a region.
	Rates map[Region]Amount
}
