package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/output"
)

func NewTransactionsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Manage the transactions of the accounts",
	}

	cmd.AddCommand(newTransactionsList(s))
	cmd.AddCommand(newTransactionsAdd(s))
	cmd.AddCommand(newTransactionsUpdate(s))
	cmd.AddCommand(newTransactionsPay(s))
	cmd.AddCommand(newTransactionsRemove(s))
	cmd.AddCommand(newTransactionsOfx(s))
	cmd.AddCommand(newTransactionsCsv(s))
	cmd.AddCommand(newTransactionsIcal(s))

	return cmd
}

type periodFlags struct {
	from string
	to   string
}

func (f *periodFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first deadline (YYYY-MM-DD), current month by default")
	cmd.Flags().StringVar(&f.to, "to", "", "last deadline (YYYY-MM-DD), current month by default")
}

func (f *periodFlags) period() (time.Time, time.Time, error) {
	from, to := ledger.MonthRange(now())

	if f.from != "" {
		d, err := parseDate(f.from)
		if err != nil {
			return from, to, err
		}
		from = d
	}
	if f.to != "" {
		d, err := parseDate(f.to)
		if err != nil {
			return from, to, err
		}
		to = d
	}

	return from, to, nil
}

func parseStatus(s string) (ledger.StatusFilter, error) {
	switch s {
	case "", "all":
		return ledger.All, nil
	case "forpay":
		return ledger.ForPay, nil
	case "paid":
		return ledger.Paid, nil
	}
	return ledger.All, fmt.Errorf("invalid status '%s': must be one of all, forpay, paid", s)
}

var totalKeys = []string{
	ledger.TotalPayable:         "total_payable",
	ledger.TotalToReceive:       "total_to_receive",
	ledger.TotalExpenses:        "total_expenses",
	ledger.TotalIncomes:         "total_incomes",
	ledger.TotalPreviousBalance: "total_previous_balance",
	ledger.TotalCurrentBalance:  "total_current_balance",
}

func transactionType(t *ledger.Transaction) string {
	switch {
	case t.IsTransfer():
		return "T"
	case t.Value.IsNegative():
		return "D"
	}
	return "C"
}

func (s *session) counterpart(t *ledger.Transaction) string {
	if t.Uuid == ledger.RemainingUuid {
		return s.app.Texts.Text("remaining")
	}
	if t.Transfer != nil {
		return t.Counterpart() + s.app.Texts.Text("account_suffix")
	}
	return t.Counterpart()
}

func newTransactionsList(s *session) *cobra.Command {
	period := &periodFlags{}
	var status, id, tag string
	var forecasts, showAll bool

	cmd := &cobra.Command{
		Use:   "list <account>",
		Short: "List the transactions of an account with the totals of the period",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			st := s.app.Storage
			texts := s.app.Texts

			account, err := ledger.GetAccount(st, args[0])
			if err != nil {
				return err
			}

			options := ledger.ListOptions{Uuid: id, Tag: tag}
			options.From, options.To, err = period.period()
			if err != nil {
				return err
			}
			options.Status, err = parseStatus(status)
			if err != nil {
				return err
			}

			transactions, totals, err := ledger.GetTransactions(st, account, options)
			if err != nil {
				return err
			}

			if forecasts {
				remaining, err := ledger.RemainingTransactions(st, account, transactions, options.To)
				if err != nil {
					return err
				}
				transactions = append(transactions, remaining...)
			}

			columns := []string{"deadline", "description", "type", "value", "expected_balance", "paid_in", "balance", "counterpart", "tags", "id", "by_ofx"}
			if showAll {
				columns = append(columns, "observations", "created_at", "updated_at")
			}
			table := s.table(columns...)

			balance := totals[ledger.TotalPreviousBalance].Value
			expected := balance

			for _, t := range transactions {
				if t.IsPaid() {
					balance = balance.Add(t.Value)
				}
				expected = expected.Add(t.Value)

				byOfx, shortId := texts.Text("no"), t.Id()
				if t.OfxFitid != "" {
					byOfx = texts.Text("yes")
				}
				if t.Uuid == ledger.RemainingUuid {
					shortId = ""
				}

				row := []output.Cell{
					output.Text(ledger.FormatDate(t.Deadline)),
					output.Text(t.Description),
					output.Text(transactionType(t)),
					s.valueCell(account, t.Value),
					s.valueCell(account, expected),
					output.Text(ledger.FormatDate(t.PaidIn)),
					s.valueCell(account, balance),
					output.Text(s.counterpart(t)),
					output.Text(tagNames(t.Tags)),
					output.Text(shortId),
					output.Text(byOfx),
				}
				if showAll {
					updated := ""
					if !t.UpdatedAt.IsZero() {
						updated = t.UpdatedAt.Format(time.DateTime)
					}
					row = append(row,
						output.Text(t.Observations),
						output.Text(t.CreatedAt.Format(time.DateTime)),
						output.Text(updated),
					)
				}
				table.Add(row...)
			}

			for i, total := range totals {
				row := make([]output.Cell, len(columns))
				row[1] = output.Text(texts.Text(totalKeys[i]))
				row[3] = s.valueCell(account, total.Value)
				table.AddFooter(row...)
			}

			return s.print(cmd, table)
		}),
	}

	period.bind(cmd)
	cmd.Flags().StringVar(&status, "status", "all", "all, forpay or paid")
	cmd.Flags().StringVar(&id, "id", "", "only the transaction with this id")
	cmd.Flags().StringVar(&tag, "tag", "", "only the transactions with this tag id")
	cmd.Flags().BoolVar(&forecasts, "forecasts", false, "add what is still missing to reach each forecast")
	cmd.Flags().BoolVar(&showAll, "show-all", false, "show observations and timestamps")

	return cmd
}

type transactionFlags struct {
	description  string
	value        string
	deadline     string
	paidIn       string
	contact      string
	tags         []string
	observations string
}

func (f *transactionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.value, "value", "", "value, negative for expenses")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "deadline (YYYY-MM-DD or today)")
	cmd.Flags().StringVar(&f.paidIn, "paid-in", "", "paid date (YYYY-MM-DD or today), empty while payable")
	cmd.Flags().StringVar(&f.contact, "contact", "", "contact id")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "tag ids")
	cmd.Flags().StringVar(&f.observations, "observations", "", "observations")
}

func (s *session) applyTransaction(cmd *cobra.Command, f *transactionFlags, t *ledger.Transaction) error {
	var err error
	changed := cmd.Flags().Changed

	if changed("description") {
		t.Description = f.description
	}
	if changed("value") {
		t.Value, err = parseMoney(f.value)
		if err != nil {
			return err
		}
	}
	if changed("deadline") {
		t.Deadline, err = parseDate(f.deadline)
		if err != nil {
			return err
		}
	}
	if changed("paid-in") {
		t.PaidIn, err = parseDate(f.paidIn)
		if err != nil {
			return err
		}
	}
	if changed("contact") {
		t.Contact, err = ledger.GetContact(s.app.Storage, f.contact)
		if err != nil {
			return err
		}
	}
	if changed("tags") {
		t.Tags, err = s.tags(f.tags)
		if err != nil {
			return err
		}
	}
	if changed("observations") {
		t.Observations = f.observations
	}

	return nil
}

func newTransactionsAdd(s *session) *cobra.Command {
	flags := &transactionFlags{}
	var toAccount string
	var repetitions, interval int

	cmd := &cobra.Command{
		Use:   "add <account>",
		Short: "Add a transaction, or a transfer with --to-account",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			if flags.contact == "" && toAccount == "" {
				return fmt.Errorf("--contact or --to-account must be present")
			}

			account, err := ledger.GetAccount(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			template := &ledger.Transaction{Account: account}
			err = s.applyTransaction(cmd, flags, template)
			if err != nil {
				return err
			}

			stored, err := ledger.StoreRepetitions(s.app.Storage, template, toAccount, repetitions, interval)
			for _, t := range stored {
				s.say(cmd, "stored", t.Id())
			}

			return err
		}),
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&toAccount, "to-account", "", "destination account id, makes a transfer")
	cmd.Flags().IntVar(&repetitions, "repetitions", 1, "how many copies to store")
	cmd.Flags().IntVar(&interval, "interval", 30, "days between the copies")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("value")
	cmd.MarkFlagRequired("deadline")

	return cmd
}

func newTransactionsUpdate(s *session) *cobra.Command {
	flags := &transactionFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a transaction, both sides of a transfer",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			st := s.app.Storage

			t, err := ledger.GetTransaction(st, args[0])
			if err != nil {
				return err
			}

			err = s.applyTransaction(cmd, flags, t)
			if err != nil {
				return err
			}

			if t.IsTransfer() {
				twin, err := t.Twin(st)
				if err != nil {
					return err
				}
				err = ledger.StoreTransfer(st, t, twin)
				if err != nil {
					return err
				}
			} else {
				_, err = ledger.StoreTransaction(st, t)
				if err != nil {
					return err
				}
			}

			s.say(cmd, "stored", t.Id())
			return nil
		}),
	}

	flags.bind(cmd)

	return cmd
}

func newTransactionsPay(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id> [date|unpaid]",
		Short: "Set the paid date, today by default",
		Args:  cobra.RangeArgs(1, 2),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			t, err := ledger.GetTransaction(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			date := "today"
			if len(args) > 1 {
				date = args[1]
			}
			if date == "unpaid" {
				date = ""
			}

			paidIn, err := parseDate(date)
			if err != nil {
				return err
			}

			err = ledger.Pay(s.app.Storage, t, paidIn)
			if err != nil {
				return err
			}

			s.say(cmd, "paid", t.Id())
			return nil
		}),
	}
}

func newTransactionsRemove(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a transaction, both sides of a transfer",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			err := ledger.RemoveTransaction(s.app.Storage, args[0])
			if err != nil {
				return err
			}

			s.say(cmd, "removed", args[0])
			return nil
		}),
	}
}
