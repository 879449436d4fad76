package database

type sheetRow struct {
	Sheet  string `db:"sheet"`
	RowNum int    `db:"row_num"`
	Cells  []byte `db:"cells"`
}
