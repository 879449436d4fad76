package analytics

import (
	"fmt"

	"folio/internal/models"
)

const (
	SheetHoldings         = "Holdings"
	SheetSectorAllocation = "Sector_Allocation"
	SheetMarketCap        = "Market_Cap"
	SheetPerformance      = "Historical_Performance"
	SheetSummary          = "Summary"
	SheetTopPerformers    = "Top_Performers"
)

// RequiredSheets lists every sheet a snapshot must carry.
var RequiredSheets = []string{
	SheetHoldings,
	SheetSectorAllocation,
	SheetMarketCap,
	SheetPerformance,
	SheetSummary,
	SheetTopPerformers,
}

// Holdings columns.
const (
	colSymbol          = "Symbol"
	colCompanyName     = "Company Name"
	colQuantity        = "Quantity"
	colAvgPrice        = "Avg Price ₹"
	colCurrentPrice    = "Current Price (₹)"
	colSector          = "Sector"
	colMarketCap       = "Market Cap"
	colExchange        = "Exchange"
	colValue           = "Value ₹"
	colGainLoss        = "Gain/Loss (₹)"
	colGainLossPercent = "Gain/Loss %"
)

// Allocation and timeline columns.
const (
	colAllocValue      = "Value (₹)"
	colAllocPercentage = "Percentage"
	colDate            = "Date"
	colPortfolioValue  = "Portfolio Value (₹)"
	colNifty50         = "Nifty 50"
	colGold            = "Gold (₹/10g)"
)

func requireSheet(sheets models.Sheets, name string) ([]models.Row, error) {
	rows, ok := sheets[name]
	if !ok {
		return nil, &IngestionError{Sheet: name, Err: ErrMissingSheet}
	}
	return rows, nil
}

// NormalizeHoldings converts Holdings rows into typed holdings, keeping
// row order. Gain/Loss % is a fraction in the sheet and is scaled to
// percentage units here.
func NormalizeHoldings(rows []models.Row) ([]models.Holding, error) {
	holdings := make([]models.Holding, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		r := newRowReader(SheetHoldings, i, row)
		h := models.Holding{
			Symbol:          r.requiredText(colSymbol),
			Name:            r.text(colCompanyName),
			Quantity:        r.count(colQuantity),
			AvgPrice:        r.number(colAvgPrice),
			CurrentPrice:    r.number(colCurrentPrice),
			Sector:          r.text(colSector),
			MarketCap:       r.text(colMarketCap),
			Exchange:        r.text(colExchange),
			Value:           r.number(colValue),
			GainLoss:        r.number(colGainLoss),
			GainLossPercent: r.percent(colGainLossPercent),
		}
		if r.err != nil {
			return nil, r.err
		}
		if first, dup := seen[h.Symbol]; dup {
			return nil, &IngestionError{
				Sheet:  SheetHoldings,
				Row:    i + 1,
				Column: colSymbol,
				Err:    fmt.Errorf("%w: %s already on row %d", ErrDuplicateSymbol, h.Symbol, first),
			}
		}
		seen[h.Symbol] = i + 1
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// NormalizeAllocation builds one allocation bucket keyed by labelCol.
func NormalizeAllocation(sheet, labelCol string, rows []models.Row) (models.AllocationBucket, error) {
	bucket := make(models.AllocationBucket, len(rows))
	for i, row := range rows {
		r := newRowReader(sheet, i, row)
		label := r.requiredText(labelCol)
		entry := models.AllocationEntry{
			Value:      r.number(colAllocValue),
			Percentage: r.percent(colAllocPercentage),
		}
		if r.err != nil {
			return nil, r.err
		}
		if _, dup := bucket[label]; dup {
			return nil, &IngestionError{Sheet: sheet, Row: i + 1, Column: labelCol, Err: fmt.Errorf("%w: %s", ErrDuplicateLabel, label)}
		}
		bucket[label] = entry
	}
	return bucket, nil
}

// NormalizeTimeline reads the performance history. Rows must already be in
// ascending date order; dates are kept as the sheet renders them.
func NormalizeTimeline(rows []models.Row) ([]models.TimelinePoint, error) {
	timeline := make([]models.TimelinePoint, 0, len(rows))
	for i, row := range rows {
		r := newRowReader(SheetPerformance, i, row)
		p := models.TimelinePoint{
			Date:               r.requiredText(colDate),
			Portfolio:          r.number(colPortfolioValue),
			BenchmarkIndex:     r.number(colNifty50),
			CommodityReference: r.number(colGold),
		}
		if r.err != nil {
			return nil, r.err
		}
		timeline = append(timeline, p)
	}
	return timeline, nil
}
