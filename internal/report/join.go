package report

import (
	"slices"
	"strings"
)

// JoinedRow is one key of the full outer join. Buyer or Seller is nil when
// the key never appeared on that side; at least one is always set.
type JoinedRow struct {
	Key    Key
	Buyer  *Measures
	Seller *Measures
}

// FullOuterJoin matches buyer and seller groups on their typed key.
//
// Every key seen on either side appears exactly once in the result. A key
// present on one side only keeps the other side nil, so "absent" stays
// distinct from a zero sum. Rows are ordered by the textual key.
func FullOuterJoin(buyers, sellers *Aggregate) []JoinedRow {
	rows := make([]JoinedRow, 0, buyers.Len()+sellers.Len())
	pos := make(map[Key]int, buyers.Len()+sellers.Len())

	for _, k := range buyers.Keys() {
		m, _ := buyers.Get(k)
		pos[k] = len(rows)
		rows = append(rows, JoinedRow{Key: k, Buyer: &m})
	}
	for _, k := range sellers.Keys() {
		m, _ := sellers.Get(k)
		if i, ok := pos[k]; ok {
			rows[i].Seller = &m
			continue
		}
		pos[k] = len(rows)
		rows = append(rows, JoinedRow{Key: k, Seller: &m})
	}

	type keyed struct {
		text string
		row  JoinedRow
	}
	sorted := make([]keyed, len(rows))
	for i, r := range rows {
		sorted[i] = keyed{text: r.Key.String(), row: r}
	}
	slices.SortStableFunc(sorted, func(a, b keyed) int { return strings.Compare(a.text, b.text) })
	for i := range sorted {
		rows[i] = sorted[i].row
	}
	return rows
}
