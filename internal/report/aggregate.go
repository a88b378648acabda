package report

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/shopspring/decimal"
)

// ErrMissingColumn is returned when a grouping or measure column is absent.
var ErrMissingColumn = errors.New("missing column")

// Side selects which counterparty column a trade is grouped by.
type Side int

const (
	// SideBuyer groups by the buyer column; its sums become the *_buyer
	// report columns.
	SideBuyer Side = iota
	// SideSeller groups by the seller column; its sums become the *_seller
	// report columns.
	SideSeller
)

func (s Side) String() string {
	if s == SideSeller {
		return "seller"
	}
	return "buyer"
}

// Column is the floorsheet column holding this side's broker.
func (s Side) Column() string {
	if s == SideSeller {
		return models.ColumnSeller
	}
	return models.ColumnBuyer
}

// Measures are the summed quantity and amount of a group.
type Measures struct {
	Quantity decimal.Decimal
	Amount   decimal.Decimal
}

// Add returns the element-wise sum of m and o.
func (m Measures) Add(o Measures) Measures {
	return Measures{
		Quantity: m.Quantity.Add(o.Quantity),
		Amount:   m.Amount.Add(o.Amount),
	}
}

// Aggregate holds one side's grouped sums.
type Aggregate struct {
	Side   Side
	groups map[Key]Measures
	order  []Key
}

// NewAggregate returns an empty aggregate for side.
func NewAggregate(side Side) *Aggregate {
	return &Aggregate{Side: side, groups: make(map[Key]Measures)}
}

// Len returns the number of groups.
func (a *Aggregate) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// Empty reports whether the aggregate has no groups.
func (a *Aggregate) Empty() bool { return a.Len() == 0 }

// Get returns the measures of k.
func (a *Aggregate) Get(k Key) (Measures, bool) {
	if a == nil {
		return Measures{}, false
	}
	m, ok := a.groups[k]
	return m, ok
}

// Keys returns the group keys sorted by date, symbol, then counterparty.
func (a *Aggregate) Keys() []Key {
	if a == nil {
		return nil
	}
	return slices.Clone(a.order)
}

func (a *Aggregate) add(k Key, m Measures) {
	if cur, ok := a.groups[k]; ok {
		a.groups[k] = cur.Add(m)
		return
	}
	a.groups[k] = m
	a.order = append(a.order, k)
}

func (a *Aggregate) sort() {
	slices.SortFunc(a.order, func(x, y Key) int {
		if c := strings.Compare(x.Date, y.Date); c != 0 {
			return c
		}
		if c := strings.Compare(x.Symbol, y.Symbol); c != 0 {
			return c
		}
		return strings.Compare(x.Counterparty, y.Counterparty)
	})
}

// AggregateBy groups the rows of t by (Date, symbol, side's broker) and sums
// quantity and amount within each group.
//
// Behavior:
//   - Every matching row contributes, so repeated trades between the same
//     parties accumulate. Sums are exact decimals and do not depend on row
//     order.
//   - Rows with a blank date, symbol or broker cell belong to no group and
//     are left out. Blank measure cells count as zero.
//
// Parameters:
//   - t: the combined table; it must carry Date, symbol, quantity, amount
//     and the side's broker column.
//   - side: SideBuyer or SideSeller.
//
// Returns:
//   - the aggregate, with keys sorted by date, symbol, counterparty.
//   - an error wrapping ErrMissingColumn (plus an empty aggregate) when a
//     column is absent, or the parse error of a non-numeric cell.
func AggregateBy(t *models.Table, side Side) (*Aggregate, error) {
	agg := NewAggregate(side)
	if t == nil {
		return agg, nil
	}

	cols := []string{models.ColumnDate, models.ColumnSymbol, side.Column(), models.ColumnQuantity, models.ColumnAmount}
	idx := make([]int, len(cols))
	var missing []string
	for i, c := range cols {
		idx[i] = t.ColumnIndex(c)
		if idx[i] < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return NewAggregate(side), fmt.Errorf("%s aggregate: %w: %s", side, ErrMissingColumn, strings.Join(missing, ", "))
	}

	for n, row := range t.Rows {
		k := Key{Date: row[idx[0]], Symbol: row[idx[1]], Counterparty: row[idx[2]]}
		if k.Date == "" || k.Symbol == "" || k.Counterparty == "" {
			continue
		}
		qty, err := models.ParseNumber(row[idx[3]])
		if err != nil {
			return NewAggregate(side), fmt.Errorf("%s aggregate: row %d quantity: %w", side, n+1, err)
		}
		amt, err := models.ParseNumber(row[idx[4]])
		if err != nil {
			return NewAggregate(side), fmt.Errorf("%s aggregate: row %d amount: %w", side, n+1, err)
		}
		agg.add(k, Measures{Quantity: qty, Amount: amt})
	}

	agg.sort()
	return agg, nil
}
