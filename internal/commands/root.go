// Package commands defines the dinar CLI. Each subcommand maps to one screen
// of the original client: balance, statement, money movement, login.
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dinar-dev/dinar/internal/api"
	"github.com/dinar-dev/dinar/internal/buildinfo"
	"github.com/dinar-dev/dinar/internal/config"
	"github.com/dinar-dev/dinar/internal/log"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(logger *log.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "dinar",
		Short:   "Terminal client for the Dinar Bank API",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newLoginCommand(logger))
	rootCmd.AddCommand(newBalanceCommand(logger))
	rootCmd.AddCommand(newTransactionsCommand(logger))
	rootCmd.AddCommand(newTransferCommand(logger))
	rootCmd.AddCommand(newDepositCommand(logger))
	rootCmd.AddCommand(newWithdrawCommand(logger))

	return rootCmd
}

// session bundles what every authenticated command needs.
type session struct {
	cfg     *config.Config
	cfgPath string
	client  *api.Client
	logger  *log.Logger
}

// newSession loads config and builds an API client with the stored token.
func newSession(logger *log.Logger) (*session, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	client := api.New(cfg.API.URL, logger)
	client.SetTimeout(cfg.API.Timeout)
	if cfg.Session.Token != "" {
		client.SetToken(cfg.Session.Token)
	}

	return &session{cfg: cfg, cfgPath: path, client: client, logger: logger}, nil
}

// requireAuth converts an unauthorized API error into a usable hint.
func requireAuth(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return errors.New("not logged in (or session expired): run `dinar login`")
	}
	return err
}
