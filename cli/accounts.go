package cli

import (
	"github.com/spf13/cobra"

	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/output"
)

func NewAccountsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	cmd.AddCommand(newAccountsList(s))
	cmd.AddCommand(newAccountsAdd(s))
	cmd.AddCommand(newAccountsUpdate(s))
	cmd.AddCommand(newAccountsRemove(s))

	return cmd
}

type accountFlags struct {
	name            string
	bank            string
	currency        string
	openBalance     string
	openBalanceDate string
}

func (f *accountFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "account name")
	cmd.Flags().StringVar(&f.bank, "bank", "", "bank name")
	cmd.Flags().StringVar(&f.currency, "currency", "", "currency symbol, like R$")
	cmd.Flags().StringVar(&f.openBalance, "open-balance", "0", "opening balance")
	cmd.Flags().StringVar(&f.openBalanceDate, "open-balance-date", "", "date of the opening balance (YYYY-MM-DD)")
}

// apply copies the flags given in the command line into a.
func (f *accountFlags) apply(cmd *cobra.Command, a *ledger.Account) error {
	changed := cmd.Flags().Changed

	if changed("name") {
		a.Name = f.name
	}
	if changed("bank") {
		a.Bank = f.bank
	}
	if changed("currency") {
		a.Currency = f.currency
	}
	if changed("open-balance") || a.Uuid == "" {
		v, err := parseMoney(f.openBalance)
		if err != nil {
			return err
		}
		a.OpenBalance = v
	}
	if changed("open-balance-date") {
		d, err := parseDate(f.openBalanceDate)
		if err != nil {
			return err
		}
		a.OpenBalanceDate = d
	}

	return nil
}

func newAccountsList(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			accounts, err := ledger.GetAccounts(s.app.Storage)
			if err != nil {
				return err
			}

			table := s.table("name", "bank", "open_balance", "open_balance_date", "id")
			for _, a := range accounts {
				table.Add(
					output.Text(a.Name),
					output.Text(a.Bank),
					s.valueCell(a, a.OpenBalance),
					output.Text(ledger.FormatDate(a.OpenBalanceDate)),
					output.Text(a.Id()),
				)
			}

			return s.print(cmd, table)
		}),
	}
}

func newAccountsAdd(s *session) *cobra.Command {
	flags := &accountFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			account := &ledger.Account{}
			err := flags.apply(cmd, account)
			if err != nil {
				return err
			}

			_, err = ledger.StoreAccount(s.app.Storage, account)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", account.Id())
			return nil
		}),
	}

	flags.bind(cmd)
	cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountsUpdate(s *session) *cobra.Command {
	flags := &accountFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of an account",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			account, err := ledger.GetAccount(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			err = flags.apply(cmd, account)
			if err != nil {
				return err
			}

			_, err = ledger.StoreAccount(s.app.Storage, account)
			if err != nil {
				return err
			}

			s.say(cmd, "stored", account.Id())
			return nil
		}),
	}

	flags.bind(cmd)

	return cmd
}

func newAccountsRemove(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			err := ledger.RemoveAccount(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			s.say(cmd, "removed", args[0])
			return nil
		}),
	}
}
