package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the one money unit this API deals in, always shown with three
// decimal places.
const Currency = "KWD"

var (
	kilo     = decimal.New(1, 3)
	million  = decimal.New(1, 6)
	billion  = decimal.New(1, 9)
	trillion = decimal.New(1, 12)
)

// FormatAmount renders a magnitude with suffix scaling: values of a trillion
// and up print grouped with three decimals, then B/M/K scaling steps, and
// below a thousand a plain three-decimal figure.
func FormatAmount(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(trillion):
		return group(d.StringFixed(3))
	case d.GreaterThanOrEqual(billion):
		return d.Div(billion).StringFixed(3) + "B"
	case d.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(3) + "M"
	case d.GreaterThanOrEqual(kilo):
		return d.Div(kilo).StringFixed(3) + "K"
	default:
		return d.StringFixed(3)
	}
}

// SignedAmount prefixes the formatted amount with +/- by direction and
// appends the currency. An invalid amount renders empty: the entry still
// shows, the figure does not.
func SignedAmount(amount decimal.NullDecimal, dir Direction) string {
	if !amount.Valid {
		return ""
	}
	sign := "-"
	if dir == Income {
		sign = "+"
	}
	return sign + FormatAmount(amount.Decimal) + " " + Currency
}

// RelativeDate labels t relative to now. Elapsed days are the absolute
// difference floored to whole days, so anything under 48 elapsed hours past
// the first 24 is still "Yesterday". A week or more out prints the absolute
// date. A zero t renders empty.
func RelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff.Hours() / 24)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// group inserts thousands separators into the integer part of a fixed-point
// string.
func group(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
