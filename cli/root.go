package cli

import (
	"github.com/spf13/cobra"

	"github.com/fernandobatels/blitz-money/bootstrap"
	"github.com/fernandobatels/blitz-money/configuration"
)

// session carries the configuration and, while a command runs, the opened
// application.
type session struct {
	config *configuration.Configuration
	app    *bootstrap.Application
}

// run bootstraps the application around f and closes the storage after it.
func (s *session) run(f func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, stop, err := bootstrap.Bootstrap(s.config, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer stop()

		s.app = app
		return f(cmd, args)
	}
}

// NewRootCommand creates the bmoney command tree. Persistent flags override
// the values already present in c.
func NewRootCommand(c *configuration.Configuration) *cobra.Command {
	s := &session{config: c}

	cmd := &cobra.Command{
		Use:           "bmoney",
		Short:         "Blitz Money - personal bookkeeping",
		Long:          "Keeps accounts, contacts, tags, forecasts, rules and transactions in a single local file.",
		Version:       bootstrap.VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.File, "file", c.File, "bookkeeping file")
	flags.StringVar(&c.Lang, "lang", c.Lang, "language of the texts (en_US|pt_BR)")
	flags.BoolVar(&c.Csv, "csv", c.Csv, "print listings as csv")
	flags.BoolVar(&c.Verbose, "verbose", c.Verbose, "log storage activity")

	cmd.AddCommand(NewAccountsCommand(s))
	cmd.AddCommand(NewContactsCommand(s))
	cmd.AddCommand(NewTagsCommand(s))
	cmd.AddCommand(NewForecastsCommand(s))
	cmd.AddCommand(NewRulesCommand(s))
	cmd.AddCommand(NewTransactionsCommand(s))

	return cmd
}
