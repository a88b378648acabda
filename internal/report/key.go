package report

import (
	"errors"
	"fmt"
	"strings"
)

// KeyDelimiter separates the fields of a textual composite key.
const KeyDelimiter = ";"

// ErrKeyShape is returned when a textual key does not split into date,
// symbol and counterparty.
var ErrKeyShape = errors.New("key does not split into date, symbol and broker")

// Key identifies one (date, instrument, counterparty) group. Counterparty is
// the buyer on the buy side and the seller on the sell side.
type Key struct {
	Date         string
	Symbol       string
	Counterparty string
}

// String joins the fields with KeyDelimiter in the fixed order
// date, symbol, counterparty.
func (k Key) String() string {
	return strings.Join([]string{k.Date, k.Symbol, k.Counterparty}, KeyDelimiter)
}

// Lossless reports whether ParseKey(k.String()) gives k back, which holds
// unless a field itself contains the delimiter.
func (k Key) Lossless() bool {
	return !strings.Contains(k.Date, KeyDelimiter) &&
		!strings.Contains(k.Symbol, KeyDelimiter) &&
		!strings.Contains(k.Counterparty, KeyDelimiter)
}

// ParseKey splits a textual key back into its fields. Parts beyond the third
// are ignored.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, KeyDelimiter)
	if len(parts) < 3 {
		return Key{}, fmt.Errorf("%w: %q has %d part(s)", ErrKeyShape, s, len(parts))
	}
	return Key{Date: parts[0], Symbol: parts[1], Counterparty: parts[2]}, nil
}
