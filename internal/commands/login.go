package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dinar-dev/dinar/internal/config"
	"github.com/dinar-dev/dinar/internal/log"
)

func newLoginCommand(logger *log.Logger) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(logger)
			if err != nil {
				return err
			}

			if username == "" {
				username = sess.cfg.Session.Username
			}
			if username == "" {
				return errors.New("no username: pass --username or set it in the config")
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			token, err := sess.client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			sess.cfg.Session.Username = username
			sess.cfg.Session.Token = token
			if err := config.Save(sess.cfgPath, sess.cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted if omitted)")

	return cmd
}
