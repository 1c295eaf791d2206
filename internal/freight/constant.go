package freight

const (
	LogPrefixCalculate = "internal.freight.Calculate"

	DefaultMaxQuantity = 1000
)

// Per-unit rates in cents.
var defaultRates = map[Region]Amount{
	RegionSudeste:     510,
	RegionSul:         560,
	RegionCentroOeste: 640,
	RegionNordeste:    720,
	RegionNorte:       850,
}

var regionByUF = map[string]Region{
	"AC": RegionNorte,
	"AP": RegionNorte,
	"AM": RegionNorte,
	"PA": RegionNorte,
	"RO": RegionNorte,
	"RR": RegionNorte,
	"TO": RegionNorte,

	"AL": RegionNordeste,
	"BA": RegionNordeste,
	"CE": RegionNordeste,
	"MA": RegionNordeste,
	"PB": RegionNordeste,
	"PE": RegionNordeste,
	"PI": RegionNordeste,
	"RN": RegionNordeste,
	"SE": RegionNordeste,

	"DF": RegionCentroOeste,
	"GO": RegionCentroOeste,
	"MT": RegionCentroOeste,
	"MS": RegionCentroOeste,

	"ES": RegionSudeste,
	"MG": RegionSudeste,
	"RJ": RegionSudeste,
	"SP": RegionSudeste,

	"PR": RegionSul,
	"RS": RegionSul,
	"SC": RegionSul,
}
