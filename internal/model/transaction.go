package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a raw transaction.
type TransactionType string

const (
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
	TypeTransfer TransactionType = "transfer"
)

// ActorRef is a from/to field value: either a user ID or a username. Only a
// lookup against known users can tell which — never sniff the format.
type ActorRef = string

// Transaction is one raw transaction as returned by the API. From/To are set
// only for transfers; deposits and withdrawals have an implicit external
// source/sink.
type Transaction struct {
	ID        string
	Type      TransactionType
	Amount    decimal.NullDecimal // Valid=false when the wire value was missing or garbage
	From      ActorRef
	To        ActorRef
	CreatedAt time.Time // zero when the wire value was missing or garbage
}

// UnmarshalJSON decodes a transaction leniently: a malformed amount or
// timestamp leaves the zero value and keeps the transaction, rather than
// failing the whole list. The identifier may arrive as "id" or "_id".
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		AltID     json.RawMessage `json:"_id"`
		Type      TransactionType `json:"type"`
		Amount    json.RawMessage `json:"amount"`
		From      string          `json:"from"`
		To        string          `json:"to"`
		CreatedAt json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.ID = idString(raw.ID)
	if t.ID == "" {
		t.ID = idString(raw.AltID)
	}
	t.Type = raw.Type
	t.From = raw.From
	t.To = raw.To
	t.Amount = parseAmount(raw.Amount)
	t.CreatedAt = parseTimestamp(raw.CreatedAt)
	return nil
}

// parseAmount accepts a number or a quoted number. Negative amounts are
// invalid on this API and treated the same as garbage.
func parseAmount(raw json.RawMessage) decimal.NullDecimal {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.NullDecimal{}
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.NullDecimal{}
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// parseTimestamp accepts an RFC 3339 string or epoch milliseconds.
func parseTimestamp(raw json.RawMessage) time.Time {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if ts, perr := time.Parse(time.RFC3339, s); perr == nil {
			return ts
		}
		return time.Time{}
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}
