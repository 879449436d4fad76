package analytics

import (
	"fmt"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

// MinTimelinePoints is the shortest history the 3-month window can index.
const MinTimelinePoints = 4

// Each window compares the last point to a fixed offset in the timeline.
// One row per month over one year is assumed; calendar dates are ignored.
var returnWindows = []struct {
	window    models.Window
	reference func(n int) int
}{
	{models.Window1Month, func(n int) int { return n - 2 }},
	{models.Window3Months, func(n int) int { return n - 4 }},
	{models.Window1Year, func(int) int { return 0 }},
}

var returnSeries = []struct {
	series models.Series
	value  func(models.TimelinePoint) decimal.Decimal
}{
	{models.SeriesPortfolio, func(p models.TimelinePoint) decimal.Decimal { return p.Portfolio }},
	{models.SeriesBenchmarkIndex, func(p models.TimelinePoint) decimal.Decimal { return p.BenchmarkIndex }},
	{models.SeriesCommodityReference, func(p models.TimelinePoint) decimal.Decimal { return p.CommodityReference }},
}

// CalculateReturns computes every series over every window. A timeline
// shorter than MinTimelinePoints is rejected.
func CalculateReturns(timeline []models.TimelinePoint) (models.ReturnsTable, error) {
	n := len(timeline)
	if n < MinTimelinePoints {
		return nil, &IngestionError{
			Sheet: SheetPerformance,
			Err:   fmt.Errorf("%w: have %d points, need %d", ErrShortTimeline, n, MinTimelinePoints),
		}
	}

	table := make(models.ReturnsTable, len(returnSeries))
	latest := timeline[n-1]
	for _, s := range returnSeries {
		windows := make(map[models.Window]models.Return, len(returnWindows))
		for _, w := range returnWindows {
			windows[w.window] = PercentChange(s.value(latest), s.value(timeline[w.reference(n)]))
		}
		table[s.series] = windows
	}
	return table, nil
}

// PercentChange returns (latest-reference)/reference*100 rounded to two
// places, or an invalid Return when reference is zero.
func PercentChange(latest, reference decimal.Decimal) models.Return {
	if reference.IsZero() {
		return models.Return{}
	}
	v := latest.Sub(reference).Div(reference).Mul(hundred).Round(2)
	return models.Return{Value: v, Valid: true}
}
