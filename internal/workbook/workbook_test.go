package workbook

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"folio/internal/analytics"
	"folio/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Holdings"))
	require.NoError(t, f.SetSheetRow("Holdings", "A1", &[]any{"Symbol", "Quantity", "Value ₹", "Gain/Loss %", "Listed"}))
	require.NoError(t, f.SetSheetRow("Holdings", "A2", &[]any{"TCS", 10, 1234.56, 0.125, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, f.SetSheetRow("Holdings", "A4", &[]any{"INFY", 5, "2,500", -0.05, "n/a"}))

	pct, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Holdings", "D2", "D4", pct))
	grouped, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Holdings", "C2", "C2", grouped))

	_, err = f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Notes", "A1", &[]any{"Note"}))

	buf := new(bytes.Buffer)
	require.NoError(t, f.Write(buf))
	return buf
}

func TestReadSheets(t *testing.T) {
	sheets, err := ReadSheets(buildWorkbook(t), []string{"Holdings", "Missing"})
	require.NoError(t, err)

	require.Contains(t, sheets, "Holdings")
	assert.NotContains(t, sheets, "Missing")

	rows := sheets["Holdings"]
	require.Len(t, rows, 2, "blank row 3 is skipped")

	tcs := rows[0]
	assert.Equal(t, "TCS", tcs["Symbol"])
	assert.Equal(t, 10.0, tcs["Quantity"])
	assert.Equal(t, 1234.56, tcs["Value ₹"], "raw value, not the grouped display")
	assert.Equal(t, 0.125, tcs["Gain/Loss %"], "raw fraction, not the percent display")
	listed, ok := tcs["Listed"].(string)
	require.True(t, ok, "date cells keep their display text")
	assert.NotEmpty(t, listed)

	infy := rows[1]
	assert.Equal(t, "2,500", infy["Value ₹"])
	assert.Equal(t, "n/a", infy["Listed"])
}

func TestReadSheets_CellTypeDecidesValue(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Summary"))
	require.NoError(t, f.SetSheetRow("Summary", "A1", &[]any{"Metric", "Value", "Code", "Since"}))
	require.NoError(t, f.SetCellStr("Summary", "A2", "Total Gain/Loss"))
	require.NoError(t, f.SetCellFloat("Summary", "B2", -1231.25, -1, 64))
	require.NoError(t, f.SetCellStr("Summary", "C2", "007"))
	require.NoError(t, f.SetCellFloat("Summary", "D2", 45322, -1, 64))
	require.NoError(t, f.SetCellStr("Summary", "A3", "Diversification Score"))
	require.NoError(t, f.SetCellStr("Summary", "B3", "7.50"))
	require.NoError(t, f.SetCellFloat("Summary", "C3", 1650.5, -1, 64))
	require.NoError(t, f.SetCellFloat("Summary", "D3", 0.25, -1, 64))

	accounting, err := f.NewStyle(&excelize.Style{NumFmt: 39})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Summary", "B2", "B2", accounting))
	rupee := `"₹"#,##0.00;("₹"#,##0.00)`
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &rupee})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Summary", "C3", "C3", currency))
	dayFmt := "dd-mmm-yyyy"
	day, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dayFmt})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Summary", "D2", "D2", day))
	require.NoError(t, f.SetCellStyle("Summary", "D3", "D3", accounting))

	shown, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	require.Contains(t, shown, "(", "accounting format brackets negatives")

	buf := new(bytes.Buffer)
	require.NoError(t, f.Write(buf))
	sheets, err := ReadSheets(buf, []string{"Summary"})
	require.NoError(t, err)
	rows := sheets["Summary"]
	require.Len(t, rows, 2)

	assert.Equal(t, -1231.25, rows[0]["Value"], "bracketed negative reads as its raw number")
	assert.Equal(t, "007", rows[0]["Code"], "numeric looking text stays text")
	since, ok := rows[0]["Since"].(string)
	require.True(t, ok, "date format keeps display text")
	assert.Contains(t, since, "2024")
	assert.Equal(t, "7.50", rows[1]["Value"])
	assert.Equal(t, 1650.5, rows[1]["Code"], "custom currency format is not a date")
	assert.Equal(t, 0.25, rows[1]["Since"])
}

func TestIsDateCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{code: "dd-mmm-yyyy", want: true},
		{code: "[h]:mm:ss", want: true},
		{code: "General"},
		{code: "#,##0.00;(#,##0.00)"},
		{code: `"₹"#,##0.00`},
		{code: "[$₹-4009] #,##0.00"},
		{code: `_("Rs"* #,##0_);[Red]("Rs"* #,##0)`},
		{code: "0.00%"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateCode(tt.code))
		})
	}
}

func TestReadSheets_AllWhenUnnamed(t *testing.T) {
	sheets, err := ReadSheets(buildWorkbook(t), nil)
	require.NoError(t, err)
	assert.Len(t, sheets, 2)
	assert.Empty(t, sheets["Notes"])
}

func TestFile_LoadSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.xlsx")
	require.NoError(t, os.WriteFile(path, buildWorkbook(t).Bytes(), 0o600))

	sheets, err := NewFile(path, logrus.New()).LoadSheets(context.Background(), []string{"Holdings"})
	require.NoError(t, err)
	assert.Len(t, sheets["Holdings"], 2)

	_, err = NewFile(filepath.Join(t.TempDir(), "nope.xlsx"), nil).LoadSheets(context.Background(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFile(path, nil).LoadSheets(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func exportFixture() []analytics.ExportRecord {
	return analytics.ExportRecords([]models.Holding{
		{
			Symbol: "HDFCBANK", Name: "HDFC Bank", Quantity: 25,
			CurrentPrice: decimal.RequireFromString("1650.75"), Value: decimal.RequireFromString("41268.75"),
			GainLoss: decimal.RequireFromString("-1231.25"), GainLossPercent: decimal.RequireFromString("-2.9"),
			Sector: "Banking", MarketCap: "Large Cap",
		},
		{
			Symbol: "DIXON", Name: "Dixon Technologies", Quantity: 3,
			CurrentPrice: decimal.RequireFromString("5200"), Value: decimal.RequireFromString("15600"),
			GainLoss: decimal.RequireFromString("3600"), GainLossPercent: decimal.RequireFromString("30"),
			Sector: "Technology", MarketCap: "Small Cap",
		},
	})
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	records := exportFixture()

	buf := new(bytes.Buffer)
	require.NoError(t, WriteXLSX(buf, analytics.ExportSheetName, analytics.ExportRows(records)))

	sheets, err := ReadSheets(buf, []string{analytics.ExportSheetName})
	require.NoError(t, err)
	rows := sheets[analytics.ExportSheetName]
	require.Len(t, rows, len(records))

	for i, rec := range records {
		row := rows[i]
		assert.Equal(t, rec.Symbol, row["Symbol"])
		assert.Equal(t, rec.Name, row["Name"])
		assert.Equal(t, float64(rec.Quantity), row["Quantity"])
		assert.True(t, rec.CurrentPrice.Equal(decimal.NewFromFloat(row["Current Price"].(float64))))
		assert.True(t, rec.Value.Equal(decimal.NewFromFloat(row["Value"].(float64))))
		assert.True(t, rec.GainLoss.Equal(decimal.NewFromFloat(row["Gain/Loss"].(float64))))
		assert.True(t, rec.GainPercent.Equal(decimal.NewFromFloat(row["Gain %"].(float64))))
		assert.Equal(t, rec.Sector, row["Sector"])
		assert.Equal(t, rec.MarketCap, row["Market Cap"])
	}
}

func TestWriteXLSX_HeaderOrder(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, WriteXLSX(buf, analytics.ExportSheetName, analytics.ExportRows(nil)))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{analytics.ExportSheetName}, f.GetSheetList())
	rows, err := f.GetRows(analytics.ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, analytics.ExportColumns, rows[0])
}

func TestWriteCSV(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, WriteCSV(buf, analytics.ExportRows(exportFixture())))

	want := "Symbol,Name,Quantity,Current Price,Value,Gain/Loss,Gain %,Sector,Market Cap\n" +
		"HDFCBANK,HDFC Bank,25,1650.75,41268.75,-1231.25,-2.9,Banking,Large Cap\n" +
		"DIXON,Dixon Technologies,3,5200,15600,3600,30,Technology,Small Cap\n"
	assert.Equal(t, want, buf.String())
}
