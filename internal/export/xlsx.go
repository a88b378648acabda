package export

import (
	"fmt"

	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet name used by XLSXWriter.
const DefaultSheet = "buyerSeller"

// XLSXWriter writes report rows to a single-sheet workbook. Measures are
// stored as numbers; null measures are left as blank cells.
type XLSXWriter struct {
	Sheet string
}

// NewXLSXWriter creates a writer using DefaultSheet.
func NewXLSXWriter() *XLSXWriter { return &XLSXWriter{Sheet: DefaultSheet} }

// Write saves rows to path, replacing any existing file.
func (w *XLSXWriter) Write(path string, rows []models.ReportRow) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	sheet := w.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	header := make([]interface{}, len(models.ReportHeader))
	for i, h := range models.ReportHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.Date,
			r.Script,
			r.Broker,
			number(r.QuantityBuyer),
			number(r.AmountBuyer),
			number(r.QuantitySeller),
			number(r.AmountSeller),
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func number(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}
