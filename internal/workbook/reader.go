// Package workbook reads portfolio sheets from xlsx files and encodes
// holding exports as xlsx or csv.
package workbook

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"folio/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// File is a sheet source backed by an xlsx file on disk.
type File struct {
	path string
	log  *logrus.Logger
}

func NewFile(path string, log *logrus.Logger) *File {
	return &File{path: path, log: log}
}

// LoadSheets reads the named sheets, or every sheet when names is empty.
// Names the workbook does not contain are left out of the result.
func (f *File) LoadSheets(ctx context.Context, names []string) (models.Sheets, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wb, err := excelize.OpenFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", f.path, err)
	}
	defer wb.Close()

	sheets, err := readSheets(wb, names)
	if err != nil {
		return nil, err
	}
	if f.log != nil {
		f.log.WithFields(logrus.Fields{"path": f.path, "sheets": len(sheets)}).Debug("workbook read")
	}
	return sheets, nil
}

// ReadSheets reads sheets from an xlsx stream; see File.LoadSheets.
func ReadSheets(r io.Reader, names []string) (models.Sheets, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()
	return readSheets(wb, names)
}

func readSheets(wb *excelize.File, names []string) (models.Sheets, error) {
	if len(names) == 0 {
		names = wb.GetSheetList()
	}
	present := make(map[string]bool)
	for _, s := range wb.GetSheetList() {
		present[s] = true
	}

	sheets := make(models.Sheets, len(names))
	for _, name := range names {
		if !present[name] {
			continue
		}
		rows, err := readSheet(wb, name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		sheets[name] = rows
	}
	return sheets, nil
}

// readSheet turns a sheet into header-keyed rows. Text cells are kept
// verbatim. Number cells use their raw value so displayed rounding or
// accounting brackets never leak in, except date-formatted numbers, which
// keep their displayed form.
func readSheet(wb *excelize.File, name string) ([]models.Row, error) {
	raw, err := wb.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	shown, err := wb.GetRows(name)
	if err != nil {
		return nil, err
	}
	rows := []models.Row{}
	if len(shown) == 0 {
		return rows, nil
	}

	cells := &sheetCells{wb: wb, sheet: name, dateStyles: map[int]bool{}}
	header := shown[0]
	for i := 1; i < len(raw); i++ {
		if blank(raw[i]) {
			continue
		}
		var display []string
		if i < len(shown) {
			display = shown[i]
		}
		row := make(models.Row, len(header))
		for j, col := range header {
			if col == "" {
				continue
			}
			v, err := cells.value(j+1, i+1, at(raw[i], j), at(display, j))
			if err != nil {
				return nil, err
			}
			row[col] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type sheetCells struct {
	wb         *excelize.File
	sheet      string
	dateStyles map[int]bool
}

func (s *sheetCells) value(col, row int, raw, shown string) (any, error) {
	if raw == "" {
		return "", nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	typ, err := s.wb.GetCellType(s.sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", cell, err)
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
	case excelize.CellTypeBool, excelize.CellTypeDate, excelize.CellTypeError:
		return shown, nil
	default:
		return raw, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw, nil
	}
	date, err := s.isDate(cell)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", cell, err)
	}
	if date && shown != "" {
		return shown, nil
	}
	return f, nil
}

func (s *sheetCells) isDate(cell string) (bool, error) {
	idx, err := s.wb.GetCellStyle(s.sheet, cell)
	if err != nil {
		return false, err
	}
	if date, ok := s.dateStyles[idx]; ok {
		return date, nil
	}
	id, code, err := s.numFmt(idx)
	if err != nil {
		return false, err
	}
	date := isDateCode(code)
	if code == "" {
		date = isDateFmtID(id)
	}
	s.dateStyles[idx] = date
	return date, nil
}

// numFmt returns the number format id of a cell style and, for custom
// formats, its format code. Style.CustomNumFmt is not used because it does
// not match the code to the style's id when a workbook has several.
func (s *sheetCells) numFmt(idx int) (int, string, error) {
	if _, err := s.wb.GetStyle(idx); err != nil {
		return 0, "", err
	}
	xf := s.wb.Styles.CellXfs.Xf[idx]
	if xf.NumFmtID == nil {
		return 0, "", nil
	}
	id := *xf.NumFmtID
	if s.wb.Styles.NumFmts != nil {
		for _, nf := range s.wb.Styles.NumFmts.NumFmt {
			if nf != nil && nf.NumFmtID == id {
				return id, nf.FormatCode, nil
			}
		}
	}
	return id, "", nil
}

// isDateFmtID reports whether a built-in number format shows a date or time.
func isDateFmtID(id int) bool {
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateCode looks for date or time tokens in a custom number format,
// ignoring quoted literals, bracketed sections and escaped characters.
func isDateCode(code string) bool {
	var quoted, bracket, escaped bool
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case quoted:
			quoted = r != '"'
		case bracket:
			bracket = r != ']'
		case r == '\\' || r == '_' || r == '*':
			escaped = true
		case r == '"':
			quoted = true
		case r == '[':
			bracket = true
		case strings.ContainsRune("dmyhs", r):
			return true
		}
	}
	return false
}

func at(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
