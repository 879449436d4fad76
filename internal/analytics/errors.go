package analytics

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSheet    = errors.New("required sheet missing")
	ErrMissingMetric   = errors.New("required metric row missing")
	ErrEmptyCell       = errors.New("empty cell")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	ErrDuplicateLabel  = errors.New("duplicate allocation label")
	ErrShortTimeline   = errors.New("timeline too short")
)

// IngestionError locates a fatal problem in the raw snapshot. Row is the
// 1-based data row (header excluded), zero when the error is sheet-wide.
type IngestionError struct {
	Sheet  string
	Row    int
	Column string
	Err    error
}

func (e *IngestionError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("sheet %q row %d column %q: %v", e.Sheet, e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("sheet %q row %d: %v", e.Sheet, e.Row, e.Err)
	default:
		return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
	}
}

func (e *IngestionError) Unwrap() error { return e.Err }
