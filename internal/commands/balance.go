package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dinar-dev/dinar/internal/log"
	"github.com/dinar-dev/dinar/internal/statement"
)

func newBalanceCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the current account balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(logger)
			if err != nil {
				return err
			}

			balance, err := sess.client.Balance(cmd.Context())
			if err != nil {
				return requireAuth(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", statement.FormatAmount(balance), statement.Currency)
			return nil
		},
	}
}
