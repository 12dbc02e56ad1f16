package statement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmountScalingBoundaries(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.000"},
		{"0.5", "0.500"},
		{"50", "50.000"},
		{"999.999", "999.999"},
		{"1000", "1.000K"},
		{"999999", "999.999K"},
		{"1000000", "1.000M"},
		{"1500000", "1.500M"},
		{"1000000000", "1.000B"},
		{"2500000000", "2.500B"},
		{"999999000000", "999.999B"},
		{"1000000000000", "1,000,000,000,000.000"},
		{"1234567890123.456", "1,234,567,890,123.456"},
	}

	for _, tc := range cases {
		got := FormatAmount(decimal.RequireFromString(tc.in))
		assert.Equal(t, tc.want, got, "FormatAmount(%s)", tc.in)
	}
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, "+50.000 KWD", SignedAmount(amt("50"), Income))
	assert.Equal(t, "-0.500 KWD", SignedAmount(amt("0.5"), Expense))
	assert.Equal(t, "+1.000K KWD", SignedAmount(amt("1000"), Income))
	assert.Equal(t, "", SignedAmount(decimal.NullDecimal{}, Expense))
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same moment", now, "Today"},
		{"23 hours ago", now.Add(-23 * time.Hour), "Today"},
		{"25 hours ago", now.Add(-25 * time.Hour), "Yesterday"},
		{"47 hours ago", now.Add(-47 * time.Hour), "Yesterday"},
		{"3 days ago", now.AddDate(0, 0, -3), "3 days ago"},
		{"6 days 23h ago", now.Add(-(6*24 + 23) * time.Hour), "6 days ago"},
		{"7 days ago", now.AddDate(0, 0, -7), "Aug 23, 2026"},
		{"30 days ago", now.AddDate(0, 0, -30), "Jul 31, 2026"},
		{"in the future", now.Add(25 * time.Hour), "Yesterday"}, // absolute difference
		{"zero time", time.Time{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeDate(tc.t, now))
		})
	}
}
