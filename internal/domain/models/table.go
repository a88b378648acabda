package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Column names every floorsheet file must carry. Matching is case-sensitive.
const (
	ColumnDate     = "Date"
	ColumnSymbol   = "symbol"
	ColumnBuyer    = "buyer"
	ColumnSeller   = "seller"
	ColumnQuantity = "quantity"
	ColumnAmount   = "amount"
)

// RequiredColumns lists the columns a floorsheet header must contain.
// Any other column is carried through untouched.
var RequiredColumns = []string{
	ColumnDate,
	ColumnSymbol,
	ColumnBuyer,
	ColumnSeller,
	ColumnQuantity,
	ColumnAmount,
}

// Table is a tab-separated file held in memory: a header row and the raw
// string cells of every data row. Each row has exactly len(Header) cells.
//
// Source names the file the table came from; a combined table keeps the
// first source and is otherwise anonymous.
type Table struct {
	Source string
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of name in the header, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// MissingColumns returns the entries of want absent from the header,
// preserving the order of want.
func (t *Table) MissingColumns(want []string) []string {
	var missing []string
	for _, w := range want {
		if t.ColumnIndex(w) < 0 {
			missing = append(missing, w)
		}
	}
	return missing
}

// ParseNumber reads a quantity or amount cell. Blank cells are treated as
// zero so they do not contribute to a sum.
func ParseNumber(cell string) (decimal.Decimal, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", cell)
	}
	return d, nil
}
