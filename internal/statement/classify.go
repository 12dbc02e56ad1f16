package statement

import (
	"strings"
	"time"

	"github.com/dinar-dev/dinar/internal/model"
)

// Direction is the income/expense polarity of an entry relative to the
// viewing user.
type Direction string

const (
	Income  Direction = "income"
	Expense Direction = "expense"
)

// Entry is a transaction enriched for display.
type Entry struct {
	ID           string
	Title        string
	SignedAmount string
	Direction    Direction
	Type         model.TransactionType
	DateLabel    string
	Source       model.Transaction
}

// Classify derives the display entry for tx. Deposits are income, withdrawals
// expense. A transfer is income when its sender resolves to someone other
// than the viewer, expense when its recipient does; the sender check wins if
// both hold. Self-transfers and transfers with no resolvable side fall back
// to expense styling with the plain "Transfer" title.
func Classify(tx model.Transaction, res *Resolution, viewer string, now time.Time) Entry {
	e := Entry{ID: tx.ID, Type: tx.Type, Source: tx}

	switch tx.Type {
	case model.TypeDeposit:
		e.Direction = Income
		e.Title = "Deposit"
	case model.TypeWithdraw:
		e.Direction = Expense
		e.Title = "Withdrawal"
	default:
		from := res.Lookup(tx.From)
		to := res.Lookup(tx.To)
		fromOther := from != "" && !strings.EqualFold(from, viewer)
		toOther := to != "" && !strings.EqualFold(to, viewer)
		switch {
		case fromOther:
			e.Direction = Income
			e.Title = "Transfer from " + from
		case toOther:
			e.Direction = Expense
			e.Title = "Transfer to " + to
		default:
			e.Direction = Expense
			e.Title = "Transfer"
		}
	}

	e.SignedAmount = SignedAmount(tx.Amount, e.Direction)
	e.DateLabel = RelativeDate(tx.CreatedAt, now)
	return e
}
