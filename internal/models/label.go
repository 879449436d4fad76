package models

import "encoding/json"

// Label is a summary value taken verbatim from the workbook. A label read
// from a numeric cell is encoded as a JSON number, anything else as a
// JSON string.
type Label struct {
	Text    string
	Numeric bool
}

func (l Label) String() string {
	return l.Text
}

func (l Label) MarshalJSON() ([]byte, error) {
	if l.Numeric && json.Valid([]byte(l.Text)) {
		return []byte(l.Text), nil
	}
	return json.Marshal(l.Text)
}
