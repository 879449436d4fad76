package models

import (
	"fmt"
	"strconv"
)

// Row is one data row of a sheet keyed by its header cell. Values are
// float64, json.Number, string or nil depending on the source.
type Row map[string]any

type Sheets map[string][]Row

// String returns the cell as text; absent cells read as "".
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
