package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dinar-dev/dinar/internal/model"
)

// Criteria is an optional conjunction of statement filters. Zero-valued
// fields impose no constraint: an empty Type matches every type, zero dates
// are unbounded, and an invalid Min/Max is ignored rather than treated as
// zero.
type Criteria struct {
	Type     model.TransactionType
	DateFrom time.Time // inclusive, day granularity
	DateTo   time.Time // inclusive, day granularity
	Min      decimal.NullDecimal // inclusive
	Max      decimal.NullDecimal // inclusive
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Type == "" &&
		c.DateFrom.IsZero() && c.DateTo.IsZero() &&
		!c.Min.Valid && !c.Max.Valid
}

// Filter returns the entries matching every present criterion, preserving
// order. The input slice is never mutated; empty criteria return it as-is.
// Entries whose transaction lacks a usable date or amount are excluded from
// date- or amount-bounded results respectively.
func Filter(entries []Entry, c Criteria) []Entry {
	if c.IsZero() {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if c.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (c Criteria) matches(e Entry) bool {
	if c.Type != "" && e.Type != c.Type {
		return false
	}
	if !c.DateFrom.IsZero() || !c.DateTo.IsZero() {
		if e.Source.CreatedAt.IsZero() {
			return false
		}
		day := dateOnly(e.Source.CreatedAt)
		if !c.DateFrom.IsZero() && day.Before(dateOnly(c.DateFrom)) {
			return false
		}
		if !c.DateTo.IsZero() && day.After(dateOnly(c.DateTo)) {
			return false
		}
	}
	if c.Min.Valid || c.Max.Valid {
		if !e.Source.Amount.Valid {
			return false
		}
		amount := e.Source.Amount.Decimal
		if c.Min.Valid && amount.LessThan(c.Min.Decimal) {
			return false
		}
		if c.Max.Valid && amount.GreaterThan(c.Max.Decimal) {
			return false
		}
	}
	return true
}

// dateOnly strips the time of day so bounds compare at day granularity.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
