package dto

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/floorsheet/internal/domain/models"
)

// BrokerResponse is one report row as served by the API. Measures are
// decimal strings; a side the broker never traded on is null.
type BrokerResponse struct {
	Key            string  `json:"key" example:"2024-01-01;NABIL;58"`
	Date           string  `json:"date" example:"2024-01-01"`
	Script         string  `json:"script" example:"NABIL"`
	Broker         string  `json:"broker" example:"58"`
	QuantityBuyer  *string `json:"quantity_buyer" example:"150"`
	AmountBuyer    *string `json:"amount_buyer" example:"7500.5"`
	QuantitySeller *string `json:"quantity_seller"`
	AmountSeller   *string `json:"amount_seller"`
}

// BrokerListResponse wraps a filtered listing.
type BrokerListResponse struct {
	Count int              `json:"count"`
	Items []BrokerResponse `json:"items"`
}

// NewBrokerResponse converts a stored row, mapping absent measures to null.
func NewBrokerResponse(r models.ReportRow) BrokerResponse {
	return BrokerResponse{
		Key:            r.RowKey,
		Date:           r.Date,
		Script:         r.Script,
		Broker:         r.Broker,
		QuantityBuyer:  decimalPtr(r.QuantityBuyer),
		AmountBuyer:    decimalPtr(r.AmountBuyer),
		QuantitySeller: decimalPtr(r.QuantitySeller),
		AmountSeller:   decimalPtr(r.AmountSeller),
	}
}

// NewBrokerListResponse wraps rows; a nil slice serializes as [].
func NewBrokerListResponse(rows []models.ReportRow) BrokerListResponse {
	items := make([]BrokerResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, NewBrokerResponse(r))
	}
	return BrokerListResponse{Count: len(items), Items: items}
}

// decimalPtr renders a present measure in minimal form and an absent one as nil.
func decimalPtr(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}
