package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

var numberCleaner = strings.NewReplacer(",", "", "₹", "", " ", "", "\u00a0", "")

func parseNumber(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, ErrEmptyCell
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero, ErrInvalidNumber
		}
		return decimal.NewFromFloat(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case json.Number:
		return parseNumberString(t.String())
	case string:
		return parseNumberString(t)
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported cell type %T", ErrInvalidNumber, v)
	}
}

// parseNumberString strips grouping separators and the rupee sign.
func parseNumberString(s string) (decimal.Decimal, error) {
	s = numberCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, ErrEmptyCell
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return d, nil
}

// parsePercent scales a fraction to percentage units. Percentage cells
// hold fractions, so text carrying a % sign is rejected rather than
// guessed at.
func parsePercent(v any) (decimal.Decimal, error) {
	if s, ok := v.(string); ok && strings.Contains(s, "%") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, strings.TrimSpace(s))
	}
	d, err := parseNumber(v)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Mul(hundred), nil
}

func parseCount(v any) (int64, error) {
	d, err := parseNumber(v)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s is not a non-negative integer", ErrInvalidNumber, d)
	}
	return d.IntPart(), nil
}

// rowReader reads typed cells from one raw row. The first failure sticks
// and later reads are no-ops, so callers check err once per row.
type rowReader struct {
	sheet string
	index int
	row   models.Row
	err   error
}

func newRowReader(sheet string, index int, row models.Row) *rowReader {
	return &rowReader{sheet: sheet, index: index, row: row}
}

func (r *rowReader) fail(col string, err error) {
	if r.err == nil {
		r.err = &IngestionError{Sheet: r.sheet, Row: r.index + 1, Column: col, Err: err}
	}
}

func (r *rowReader) text(col string) string {
	return r.row.String(col)
}

func (r *rowReader) requiredText(col string) string {
	s := strings.TrimSpace(r.row.String(col))
	if s == "" {
		r.fail(col, ErrEmptyCell)
	}
	return s
}

func (r *rowReader) number(col string) decimal.Decimal {
	if r.err != nil {
		return decimal.Zero
	}
	d, err := parseNumber(r.row[col])
	if err != nil {
		r.fail(col, err)
	}
	return d
}

func (r *rowReader) percent(col string) decimal.Decimal {
	if r.err != nil {
		return decimal.Zero
	}
	d, err := parsePercent(r.row[col])
	if err != nil {
		r.fail(col, err)
	}
	return d
}

// label passes a cell through unchanged. Numeric cells stay numeric.
func (r *rowReader) label(col string) models.Label {
	if r.err != nil {
		return models.Label{}
	}
	switch v := r.row[col].(type) {
	case float64, int, int64, json.Number:
		if _, err := parseNumber(v); err != nil {
			r.fail(col, err)
			return models.Label{}
		}
		return models.Label{Text: r.row.String(col), Numeric: true}
	}
	return models.Label{Text: strings.TrimSpace(r.row.String(col))}
}

func (r *rowReader) count(col string) int64 {
	if r.err != nil {
		return 0
	}
	n, err := parseCount(r.row[col])
	if err != nil {
		r.fail(col, err)
	}
	return n
}
