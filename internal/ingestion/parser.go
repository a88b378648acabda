package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guttosm/floorsheet/internal/domain/models"
)

var (
	// ErrEmptyFile is returned for a file without a header row.
	ErrEmptyFile = errors.New("empty file")
	// ErrMissingColumns is returned when the header lacks a required column.
	ErrMissingColumns = errors.New("missing required columns")
)

const utf8BOM = "\ufeff"

// ReadTable opens, parses and validates one tab-separated floorsheet file.
// It fails on:
//   - missing or unreadable files
//   - malformed rows (quoting errors, more cells than the header)
//   - a header without every column in models.RequiredColumns
//   - non-numeric quantity or amount cells
//
// It tolerates:
//   - extra columns (kept as passthrough)
//   - repeated column names (later copies renamed, see dedupeHeader)
//   - short rows (missing trailing cells become empty)
//   - empty quantity/amount cells
func ReadTable(ctx context.Context, path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // short rows are padded below

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	header = dedupeHeader(header)

	t := &models.Table{Source: path, Header: header}
	if missing := t.MissingColumns(models.RequiredColumns); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	qtyCol := t.ColumnIndex(models.ColumnQuantity)
	amtCol := t.ColumnIndex(models.ColumnAmount)

	lineNumber := 1 // header already read
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) > len(header) {
			return nil, fmt.Errorf("line %d: expected at most %d fields, got %d", lineNumber, len(header), len(rec))
		}
		if len(rec) < len(header) {
			rec = append(rec, make([]string, len(header)-len(rec))...)
		}
		if _, err := models.ParseNumber(rec[qtyCol]); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNumber, models.ColumnQuantity, err)
		}
		if _, err := models.ParseNumber(rec[amtCol]); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNumber, models.ColumnAmount, err)
		}

		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

// dedupeHeader renames repeated column names so every column stays
// addressable. The first occurrence keeps its name; later ones become
// "name.1", "name.2" and so on, skipping names already in the header.
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[h] = true
	}
	used := make(map[string]bool, len(header))
	next := make(map[string]int)
	for i, h := range header {
		if !used[h] {
			used[h] = true
			out[i] = h
			continue
		}
		name := h
		for {
			next[h]++
			name = fmt.Sprintf("%s.%d", h, next[h])
			if !seen[name] && !used[name] {
				break
			}
		}
		used[name] = true
		out[i] = name
	}
	return out
}
