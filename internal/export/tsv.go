// Package export writes the buyer/seller report to disk.
//
// TSVWriter produces the tab-separated report file consumed downstream;
// XLSXWriter produces an optional spreadsheet copy of the same rows.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/floorsheet/internal/domain/models"
)

// TSVWriter writes report rows as tab-separated text with a header row and
// no index column.
type TSVWriter struct{}

// NewTSVWriter creates a new TSV writer.
func NewTSVWriter() *TSVWriter { return &TSVWriter{} }

// Write creates (or truncates) path and writes rows to it. Parent
// directories are created as needed.
func (w *TSVWriter) Write(path string, rows []models.ReportRow) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := writeRecord(bw, models.ReportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		if err := writeRecord(bw, r.Record()); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// writeRecord writes one tab-separated line. A cell is quoted only when it
// contains a tab, a double quote or a line break; embedded quotes are
// doubled. Leading and trailing spaces are written as is.
func writeRecord(w io.StringWriter, rec []string) error {
	for i, cell := range rec {
		if i > 0 {
			if _, err := w.WriteString("\t"); err != nil {
				return err
			}
		}
		if strings.ContainsAny(cell, "\t\"\r\n") {
			cell = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		if _, err := w.WriteString(cell); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
