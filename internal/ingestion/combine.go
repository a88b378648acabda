package ingestion

import (
	"errors"

	"github.com/guttosm/floorsheet/internal/domain/models"
)

// ErrNoTables is returned by Combine when there is nothing to combine.
var ErrNoTables = errors.New("no tables to combine")

// Combine concatenates tables into one. The combined header is the union of
// all headers in first-seen order; each row is re-mapped by column name and
// cells of columns its file did not have are left empty. Rows keep their
// source order, later tables after earlier ones.
func Combine(tables []*models.Table) (*models.Table, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	var header []string
	pos := make(map[string]int)
	total := 0
	for _, t := range tables {
		for _, h := range t.Header {
			if _, ok := pos[h]; !ok {
				pos[h] = len(header)
				header = append(header, h)
			}
		}
		total += t.Len()
	}

	out := &models.Table{Source: tables[0].Source, Header: header, Rows: make([][]string, 0, total)}
	for _, t := range tables {
		mapping := make([]int, len(t.Header))
		for i, h := range t.Header {
			mapping[i] = pos[h]
		}
		for _, rec := range t.Rows {
			row := make([]string, len(header))
			for i, cell := range rec {
				row[mapping[i]] = cell
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
