package models

import "github.com/shopspring/decimal"

type Series string

const (
	SeriesPortfolio          Series = "portfolio"
	SeriesBenchmarkIndex     Series = "benchmarkIndex"
	SeriesCommodityReference Series = "commodityReference"
)

type Window string

const (
	Window1Month  Window = "1month"
	Window3Months Window = "3months"
	Window1Year   Window = "1year"
)

// Return is a percentage change rounded to two places. An invalid Return
// (zero reference value) marshals as null and must not be shown as 0.
type Return struct {
	Value decimal.Decimal
	Valid bool
}

func (r Return) String() string {
	if !r.Valid {
		return "n/a"
	}
	return r.Value.StringFixed(2)
}

func (r Return) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + r.Value.StringFixed(2) + `"`), nil
}

type ReturnsTable map[Series]map[Window]Return

type Performance struct {
	Timeline []TimelinePoint `json:"timeline"`
	Returns  ReturnsTable    `json:"returns"`
}
