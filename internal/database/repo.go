package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"folio/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// Repo stores raw sheet rows as JSON documents, one per row, in the
// sheet_rows table.
type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

// LoadSheets returns the stored rows of the named sheets in row order,
// or of every sheet when names is empty. Numbers decode as json.Number.
func (r *Repo) LoadSheets(ctx context.Context, names []string) (models.Sheets, error) {
	q := `SELECT sheet, row_num, cells FROM sheet_rows ORDER BY sheet, row_num`
	args := []any{}
	if len(names) > 0 {
		q = `SELECT sheet, row_num, cells FROM sheet_rows WHERE sheet = ANY($1) ORDER BY sheet, row_num`
		args = append(args, pq.Array(names))
	}
	rows, err := r.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sheets := models.Sheets{}
	for rows.Next() {
		var sr sheetRow
		if err := rows.StructScan(&sr); err != nil {
			return nil, fmt.Errorf("scan sheet row: %w", err)
		}
		row, err := decodeCells(sr.Cells)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sr.Sheet, sr.RowNum, err)
		}
		sheets[sr.Sheet] = append(sheets[sr.Sheet], row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.log.Debugf("loaded %d sheets from postgres", len(sheets))
	return sheets, nil
}

func decodeCells(b []byte) (models.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	row := models.Row{}
	if err := dec.Decode(&row); err != nil {
		return nil, err
	}
	return row, nil
}

// ReplaceSheet swaps the stored rows of one sheet in a single transaction.
func (r *Repo) ReplaceSheet(ctx context.Context, sheet string, rows []models.Row) error {
	return r.ReplaceSheets(ctx, models.Sheets{sheet: rows})
}

// ReplaceSheets swaps the stored rows of every given sheet in one
// transaction. On error no sheet is changed.
func (r *Repo) ReplaceSheets(ctx context.Context, sheets models.Sheets) error {
	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range names {
		if err := replaceRows(ctx, tx, name, sheets[name]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	for _, name := range names {
		r.log.WithFields(logrus.Fields{"sheet": name, "rows": len(sheets[name])}).Info("sheet replaced")
	}
	return nil
}

func replaceRows(ctx context.Context, tx *sqlx.Tx, sheet string, rows []models.Row) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE sheet = $1`, sheet); err != nil {
		return err
	}
	for i, row := range rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("sheet %s: encode row %d: %w", sheet, i+1, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO sheet_rows (sheet, row_num, cells) VALUES ($1, $2, $3::jsonb)`, sheet, i+1, string(cells)); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return fmt.Errorf("sheet %s row %d stored twice: %w", sheet, i+1, err)
			}
			return err
		}
	}
	return nil
}

// ListSheets returns the names of the stored sheets.
func (r *Repo) ListSheets(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, `SELECT DISTINCT sheet FROM sheet_rows ORDER BY sheet`); err != nil {
		return nil, err
	}
	return names, nil
}
