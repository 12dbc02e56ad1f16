package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dinar-dev/dinar/internal/log"
	"github.com/dinar-dev/dinar/internal/model"
	"github.com/dinar-dev/dinar/internal/statement"
)

const flagDateFormat = "2006-01-02"

func newTransactionsCommand(logger *log.Logger) *cobra.Command {
	var typeFlag, fromFlag, toFlag, minFlag, maxFlag string

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Show the classified transaction history",
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := parseCriteria(typeFlag, fromFlag, toFlag, minFlag, maxFlag, logger)
			if err != nil {
				return err
			}

			sess, err := newSession(logger)
			if err != nil {
				return err
			}
			entries, err := buildStatement(cmd, sess, criteria)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTITLE\tAMOUNT\tID")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.DateLabel, e.Title, e.SignedAmount, e.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "filter by type: deposit, withdraw or transfer")
	cmd.Flags().StringVar(&fromFlag, "from", "", "earliest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&minFlag, "min", "", "minimum amount, inclusive")
	cmd.Flags().StringVar(&maxFlag, "max", "", "maximum amount, inclusive")

	cmd.AddCommand(newTransactionsShowCommand(logger))

	return cmd
}

func newTransactionsShowCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(logger)
			if err != nil {
				return err
			}
			entries, err := buildStatement(cmd, sess, statement.Criteria{})
			if err != nil {
				return err
			}

			e, ok := statement.Find(entries, args[0])
			if !ok {
				return fmt.Errorf("no transaction with ID %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:     %s\n", e.ID)
			fmt.Fprintf(out, "Title:  %s\n", e.Title)
			fmt.Fprintf(out, "Type:   %s\n", e.Type)
			fmt.Fprintf(out, "Amount: %s\n", e.SignedAmount)
			fmt.Fprintf(out, "Date:   %s\n", e.DateLabel)
			return nil
		},
	}
}

// buildStatement fetches the statement inputs and runs the pipeline. An
// upstream list-fetch failure is terminal for the command; rerunning it is
// the retry.
func buildStatement(cmd *cobra.Command, sess *session, criteria statement.Criteria) ([]statement.Entry, error) {
	ctx := cmd.Context()

	viewer := sess.cfg.Session.Username
	if viewer == "" {
		me, err := sess.client.Me(ctx)
		if err != nil {
			return nil, requireAuth(err)
		}
		viewer = me.Username
	}

	txns, err := sess.client.Transactions(ctx)
	if err != nil {
		return nil, requireAuth(err)
	}
	users, err := sess.client.Users(ctx)
	if err != nil {
		return nil, requireAuth(err)
	}

	svc := statement.NewService(sess.client, sess.cfg.API.FetchLimit, sess.logger)
	return svc.Build(ctx, txns, users, viewer, criteria), nil
}

// parseCriteria turns the filter flags into pipeline criteria. A bad date is
// a flag error; an unparseable amount bound is ignored as if absent.
func parseCriteria(typeFlag, fromFlag, toFlag, minFlag, maxFlag string, logger *log.Logger) (statement.Criteria, error) {
	var c statement.Criteria

	switch model.TransactionType(typeFlag) {
	case "", model.TypeDeposit, model.TypeWithdraw, model.TypeTransfer:
		c.Type = model.TransactionType(typeFlag)
	default:
		return c, fmt.Errorf("unknown type %q: want deposit, withdraw or transfer", typeFlag)
	}

	var err error
	if c.DateFrom, err = parseDateFlag(fromFlag); err != nil {
		return c, err
	}
	if c.DateTo, err = parseDateFlag(toFlag); err != nil {
		return c, err
	}

	c.Min = parseAmountFlag(minFlag, "min", logger)
	c.Max = parseAmountFlag(maxFlag, "max", logger)
	return c, nil
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(flagDateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	return t, nil
}

func parseAmountFlag(value, name string, logger *log.Logger) decimal.NullDecimal {
	if value == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		logger.Warn("ignoring unparseable amount bound",
			log.FieldOperation, name, log.FieldError, err)
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
