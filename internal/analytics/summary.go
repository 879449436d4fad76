package analytics

import (
	"fmt"

	"folio/internal/models"
)

const (
	colMetric      = "Metric"
	colMetricValue = "Value"
	colPerformance = "Performance"
)

// Summary sheet metric names.
const (
	MetricTotalValue           = "Total Portfolio Value"
	MetricTotalInvested        = "Total Invested Amount"
	MetricTotalGainLoss        = "Total Gain/Loss"
	MetricTotalGainLossPercent = "Total Gain/Loss %"
	MetricNumberOfHoldings     = "Number of Holdings"
	MetricDiversification      = "Diversification Score"
	MetricRiskLevel            = "Risk Level"

	MetricBestPerformer  = "Best Performer"
	MetricWorstPerformer = "Worst Performer"
)

// findMetric returns a reader over the first row whose Metric cell equals
// metric exactly.
func findMetric(sheet string, rows []models.Row, metric string) (*rowReader, error) {
	for i, row := range rows {
		if row.String(colMetric) == metric {
			return newRowReader(sheet, i, row), nil
		}
	}
	return nil, &IngestionError{Sheet: sheet, Err: fmt.Errorf("%w: %q", ErrMissingMetric, metric)}
}

// BuildSummary projects the Summary and Top_Performers sheets into a
// Summary. Diversification score and risk level are passed through
// as labels, keeping numeric cells numeric.
func BuildSummary(summaryRows, performerRows []models.Row) (models.Summary, error) {
	var s models.Summary

	fields := []struct {
		metric string
		read   func(r *rowReader)
	}{
		{MetricTotalValue, func(r *rowReader) { s.TotalValue = r.number(colMetricValue) }},
		{MetricTotalInvested, func(r *rowReader) { s.TotalInvested = r.number(colMetricValue) }},
		{MetricTotalGainLoss, func(r *rowReader) { s.TotalGainLoss = r.number(colMetricValue) }},
		{MetricTotalGainLossPercent, func(r *rowReader) { s.TotalGainLossPercent = r.percent(colMetricValue) }},
		{MetricNumberOfHoldings, func(r *rowReader) { s.NumberOfHoldings = r.count(colMetricValue) }},
		{MetricDiversification, func(r *rowReader) { s.DiversificationScore = r.label(colMetricValue) }},
		{MetricRiskLevel, func(r *rowReader) { s.RiskLevel = r.label(colMetricValue) }},
	}
	for _, f := range fields {
		r, err := findMetric(SheetSummary, summaryRows, f.metric)
		if err != nil {
			return models.Summary{}, err
		}
		if f.read(r); r.err != nil {
			return models.Summary{}, r.err
		}
	}

	var err error
	if s.TopPerformer, err = findPerformer(performerRows, MetricBestPerformer); err != nil {
		return models.Summary{}, err
	}
	if s.WorstPerformer, err = findPerformer(performerRows, MetricWorstPerformer); err != nil {
		return models.Summary{}, err
	}
	return s, nil
}

func findPerformer(rows []models.Row, metric string) (models.Performer, error) {
	r, err := findMetric(SheetTopPerformers, rows, metric)
	if err != nil {
		return models.Performer{}, err
	}
	p := models.Performer{
		Symbol:      r.requiredText(colSymbol),
		Name:        r.text(colCompanyName),
		GainPercent: r.percent(colPerformance),
	}
	if r.err != nil {
		return models.Performer{}, r.err
	}
	return p, nil
}
