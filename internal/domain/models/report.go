package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportHeader is the column order of the exported buyer/seller report.
var ReportHeader = []string{
	"Date",
	"Script",
	"Broker",
	"quantity_buyer",
	"amount_buyer",
	"quantity_seller",
	"amount_seller",
}

// ReportRow is one line of the buyer/seller report: the activity of a single
// broker in a single script on a single day.
//
// A side's measures are invalid (null) when the broker never appeared on that
// side for the (Date, Script) pair.
//
// RowKey is the textual composite key "Date;Script;Broker". It is stored for
// lookups and never written to the exported file.
type ReportRow struct {
	RowKey         string              `json:"row_key"`
	Date           string              `json:"date"`
	Script         string              `json:"script"`
	Broker         string              `json:"broker"`
	QuantityBuyer  decimal.NullDecimal `json:"quantity_buyer"`
	AmountBuyer    decimal.NullDecimal `json:"amount_buyer"`
	QuantitySeller decimal.NullDecimal `json:"quantity_seller"`
	AmountSeller   decimal.NullDecimal `json:"amount_seller"`
}

// Record renders the row in ReportHeader order. Null measures become empty
// cells.
func (r ReportRow) Record() []string {
	return []string{
		r.Date,
		r.Script,
		r.Broker,
		formatNull(r.QuantityBuyer),
		formatNull(r.AmountBuyer),
		formatNull(r.QuantitySeller),
		formatNull(r.AmountSeller),
	}
}

func formatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// BrokerFilter narrows a report query. Empty fields match everything.
type BrokerFilter struct {
	Date   string
	Script string
	Broker string
	Limit  int
}

// Run summarizes one execution of the report pipeline.
type Run struct {
	ID           string    `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	InputFiles   []string  `json:"input_files"`
	LoadedFiles  []string  `json:"loaded_files"`
	SkippedFiles []string  `json:"skipped_files"`
	RowsCombined int       `json:"rows_combined"`
	ReportRows   int       `json:"report_rows"`
	OutputFile   string    `json:"output_file"`
}
