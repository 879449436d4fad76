package analytics

import "folio/internal/models"

func holdingRow(symbol, name string, qty float64, gain float64, sector, cap string) models.Row {
	return models.Row{
		"Symbol":            symbol,
		"Company Name":      name,
		"Quantity":          qty,
		"Avg Price ₹":       1000.0,
		"Current Price (₹)": 1100.0,
		"Sector":            sector,
		"Market Cap":        cap,
		"Exchange":          "NSE",
		"Value ₹":           qty * 1100,
		"Gain/Loss (₹)":     qty * 100,
		"Gain/Loss %":       gain,
	}
}

func sampleSheets() models.Sheets {
	return models.Sheets{
		SheetHoldings: {
			holdingRow("RELIANCE", "Reliance Industries", 50, 0.1, "Energy", "Large Cap"),
			holdingRow("INFY", "Infosys Limited", 100, 0.25, "Technology", "Large Cap"),
			holdingRow("TATAPOWER", "Tata Power", 200, -0.12, "Energy", "Mid Cap"),
		},
		SheetSectorAllocation: {
			{"Sector": "Energy", "Value (₹)": 275000.0, "Percentage": 0.6},
			{"Sector": "Technology", "Value (₹)": "1,10,000", "Percentage": 0.4},
		},
		SheetMarketCap: {
			{"Market Cap": "Large Cap", "Value (₹)": "1,65,000.50", "Percentage": 0.75},
			{"Market Cap": "Mid Cap", "Value (₹)": 55000.0, "Percentage": "0.25"},
		},
		SheetPerformance: {
			{"Date": "2024-01-31", "Portfolio Value (₹)": 100.0, "Nifty 50": 20000.0, "Gold (₹/10g)": 60000.0},
			{"Date": "2024-02-29", "Portfolio Value (₹)": 110.0, "Nifty 50": 21000.0, "Gold (₹/10g)": 61000.0},
			{"Date": "2024-03-31", "Portfolio Value (₹)": 121.0, "Nifty 50": 22000.0, "Gold (₹/10g)": 62000.0},
			{"Date": "2024-04-30", "Portfolio Value (₹)": 133.1, "Nifty 50": 22000.0, "Gold (₹/10g)": 63000.0},
		},
		SheetSummary: {
			{"Metric": "Total Portfolio Value", "Value": "3,30,000"},
			{"Metric": "Total Invested Amount", "Value": "3,00,000"},
			{"Metric": "Total Gain/Loss", "Value": "30,000"},
			{"Metric": "Total Gain/Loss %", "Value": 0.1},
			{"Metric": "Number of Holdings", "Value": 3.0},
			{"Metric": "Diversification Score", "Value": 7.5},
			{"Metric": "Risk Level", "Value": "Moderate"},
		},
		SheetTopPerformers: {
			{"Metric": "Best Performer", "Symbol": "INFY", "Company Name": "Infosys Limited", "Performance": 0.25},
			{"Metric": "Worst Performer", "Symbol": "TATAPOWER", "Company Name": "Tata Power", "Performance": "-0.12"},
		},
	}
}

func symbols(holdings []models.Holding) []string {
	out := make([]string, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, h.Symbol)
	}
	return out
}
