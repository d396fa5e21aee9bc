package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fernandobatels/blitz-money/calendar"
	"github.com/fernandobatels/blitz-money/importer"
	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/storage"
)

// importPending stores the pending transactions not imported yet. Rules fill
// the contact first; counterpart, a contact or an account id, is used for
// the ones still without contact. Without both the transaction is skipped.
func (s *session) importPending(cmd *cobra.Command, account *ledger.Account, pending []*importer.PendingTransaction, counterpart string) error {
	st := s.app.Storage
	logger := s.app.Logger

	err := importer.BuildIndex(st)
	if err != nil {
		return err
	}
	s.say(cmd, "import_index", st.Index().Len())

	var fallback *ledger.Contact
	if counterpart != "" {
		fallback, err = ledger.GetContact(st, counterpart)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}

	imported := 0
	for _, p := range pending {
		t, err := p.Build(st, account)
		if err != nil {
			return err
		}
		if t.Uuid != "" {
			s.say(cmd, "import_already", t.Description)
			continue
		}

		applied, err := ledger.ApplyRules(st, t)
		if err != nil {
			return err
		}
		logger.Debug("import", "fitid", p.InstitutionID, "rule", applied)

		if t.Contact == nil {
			t.Contact = fallback
		}
		if t.Contact == nil && counterpart == "" {
			s.say(cmd, "import_no_contact", t.Description)
			continue
		}

		err = ledger.MakeTransactionOrTransfer(st, t, counterpart)
		if err != nil {
			return err
		}
		importer.Remember(st, t)
		imported++
	}

	s.say(cmd, "import_done", imported)
	return nil
}

func newTransactionsOfx(s *session) *cobra.Command {
	var counterpart string
	var invert bool

	cmd := &cobra.Command{
		Use:   "ofx <account> <file>",
		Short: "Import the bank statement of an OFX file",
		Args:  cobra.ExactArgs(2),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			account, err := ledger.GetAccount(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			pending, err := importer.ReadOfx(args[1], invert)
			if err != nil {
				return err
			}

			return s.importPending(cmd, account, pending, counterpart)
		}),
	}

	cmd.Flags().StringVar(&counterpart, "counterpart", "", "contact or account id used when no rule gives a contact")
	cmd.Flags().BoolVar(&invert, "invert", false, "invert the sign of every amount, for credit card statements")

	return cmd
}

func newTransactionsCsv(s *session) *cobra.Command {
	var counterpart string
	options := importer.DefaultCsvOptions()

	cmd := &cobra.Command{
		Use:   "csv <account> <file>",
		Short: "Import the rows of a CSV file",
		Args:  cobra.ExactArgs(2),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			account, err := ledger.GetAccount(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			pending, err := importer.ReadCsv(args[1], options)
			if err != nil {
				return err
			}

			return s.importPending(cmd, account, pending, counterpart)
		}),
	}

	cmd.Flags().StringVar(&counterpart, "counterpart", "", "contact or account id used when no rule gives a contact")
	cmd.Flags().StringVar(&options.Delimiter, "delimiter", options.Delimiter, "field delimiter")
	cmd.Flags().IntVar(&options.Posted, "posted", options.Posted, "column of the posted date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&options.Amount, "amount", options.Amount, "column of the amount")
	cmd.Flags().IntVar(&options.Memo, "memo", options.Memo, "column of the memo")
	cmd.Flags().BoolVar(&options.HasHeader, "header", options.HasHeader, "the first row is a header")

	return cmd
}

func newTransactionsIcal(s *session) *cobra.Command {
	period := &periodFlags{}

	cmd := &cobra.Command{
		Use:   "ical <account>",
		Short: "Print the transactions of the period as an iCalendar",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			account, err := ledger.GetAccount(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			options := ledger.ListOptions{Status: ledger.All}
			options.From, options.To, err = period.period()
			if err != nil {
				return err
			}

			transactions, _, err := ledger.GetTransactions(s.app.Storage, account, options)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write([]byte(calendar.Export(transactions, s.app.Texts)))
			return err
		}),
	}

	period.bind(cmd)

	return cmd
}
