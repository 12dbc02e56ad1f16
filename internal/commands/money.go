package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dinar-dev/dinar/internal/log"
)

func newTransferCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <to> <amount>",
		Short: "Send money to another user (by username or ID)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseMoneyArg(args[1])
			if err != nil {
				return err
			}

			sess, err := newSession(logger)
			if err != nil {
				return err
			}
			if err := sess.client.Transfer(cmd.Context(), args[0], amount); err != nil {
				return requireAuth(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sent %s KWD to %s\n", amount.StringFixed(3), args[0])
			return nil
		},
	}
}

func newDepositCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Deposit money into the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseMoneyArg(args[0])
			if err != nil {
				return err
			}

			sess, err := newSession(logger)
			if err != nil {
				return err
			}
			if err := sess.client.Deposit(cmd.Context(), amount); err != nil {
				return requireAuth(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deposited %s KWD\n", amount.StringFixed(3))
			return nil
		},
	}
}

func newWithdrawCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Withdraw money from the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseMoneyArg(args[0])
			if err != nil {
				return err
			}

			sess, err := newSession(logger)
			if err != nil {
				return err
			}
			if err := sess.client.Withdraw(cmd.Context(), amount); err != nil {
				return requireAuth(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Withdrew %s KWD\n", amount.StringFixed(3))
			return nil
		},
	}
}

// parseMoneyArg parses a positive KWD amount from a command argument.
func parseMoneyArg(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: must be positive", s)
	}
	return d, nil
}
