package report

import (
	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Reshape turns joined rows into report rows: Date, Script and Broker first,
// then the buyer and seller measures. The textual key is kept on RowKey for
// storage but is not part of the exported columns.
func Reshape(rows []JoinedRow) []models.ReportRow {
	out := make([]models.ReportRow, 0, len(rows))
	for _, r := range rows {
		rr := models.ReportRow{
			RowKey: r.Key.String(),
			Date:   r.Key.Date,
			Script: r.Key.Symbol,
			Broker: r.Key.Counterparty,
		}
		if r.Buyer != nil {
			rr.QuantityBuyer = valid(r.Buyer.Quantity)
			rr.AmountBuyer = valid(r.Buyer.Amount)
		}
		if r.Seller != nil {
			rr.QuantitySeller = valid(r.Seller.Quantity)
			rr.AmountSeller = valid(r.Seller.Amount)
		}
		out = append(out, rr)
	}
	return out
}

func valid(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
