package analytics

import (
	"folio/internal/models"

	"github.com/shopspring/decimal"
)

// ExportSheetName and ExportFileBase name the downloaded holdings view.
const (
	ExportSheetName = "Holdings"
	ExportFileBase  = "portfolio_holdings"
)

// ExportColumns is the header row of an export, in record field order.
var ExportColumns = []string{
	"Symbol",
	"Name",
	"Quantity",
	"Current Price",
	"Value",
	"Gain/Loss",
	"Gain %",
	"Sector",
	"Market Cap",
}

type ExportRecord struct {
	Symbol       string          `json:"Symbol"`
	Name         string          `json:"Name"`
	Quantity     int64           `json:"Quantity"`
	CurrentPrice decimal.Decimal `json:"Current Price"`
	Value        decimal.Decimal `json:"Value"`
	GainLoss     decimal.Decimal `json:"Gain/Loss"`
	GainPercent  decimal.Decimal `json:"Gain %"`
	Sector       string          `json:"Sector"`
	MarketCap    string          `json:"Market Cap"`
}

// Values returns the cells in ExportColumns order; amounts stay numeric.
func (r ExportRecord) Values() []any {
	return []any{
		r.Symbol,
		r.Name,
		r.Quantity,
		toFloat(r.CurrentPrice),
		toFloat(r.Value),
		toFloat(r.GainLoss),
		toFloat(r.GainPercent),
		r.Sector,
		r.MarketCap,
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ExportRecords projects holdings into export records, one per holding in
// the given order.
func ExportRecords(holdings []models.Holding) []ExportRecord {
	records := make([]ExportRecord, 0, len(holdings))
	for _, h := range holdings {
		records = append(records, ExportRecord{
			Symbol:       h.Symbol,
			Name:         h.Name,
			Quantity:     h.Quantity,
			CurrentPrice: h.CurrentPrice,
			Value:        h.Value,
			GainLoss:     h.GainLoss,
			GainPercent:  h.GainLossPercent,
			Sector:       h.Sector,
			MarketCap:    h.MarketCap,
		})
	}
	return records
}

// ExportRows returns the header followed by one value row per record.
func ExportRows(records []ExportRecord) [][]any {
	rows := make([][]any, 0, len(records)+1)
	header := make([]any, len(ExportColumns))
	for i, c := range ExportColumns {
		header[i] = c
	}
	rows = append(rows, header)
	for _, r := range records {
		rows = append(rows, r.Values())
	}
	return rows
}
