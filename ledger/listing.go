package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernandobatels/blitz-money/storage"
)

type StatusFilter int

const (
	All StatusFilter = iota
	ForPay
	Paid
)

type Total struct {
	Label string
	Value decimal.Decimal
}

// Positions of the totals returned by GetTransactions.
const (
	TotalPayable = iota
	TotalToReceive
	TotalExpenses
	TotalIncomes
	TotalPreviousBalance
	TotalCurrentBalance
)

type ListOptions struct {
	From   time.Time
	To     time.Time
	Status StatusFilter
	Uuid   string // uuid, prefix or short id
	Tag    string // tag uuid
}

func newTotals(account *Account) []Total {
	return []Total{
		{Label: "Expenses(payable)", Value: decimal.Zero},
		{Label: "Incomes(to receive)", Value: decimal.Zero},
		{Label: "Expenses", Value: decimal.Zero},
		{Label: "Incomes", Value: decimal.Zero},
		{Label: "Previous balance", Value: account.OpenBalance},
		{Label: "Current balance", Value: account.OpenBalance},
	}
}

// GetTransactions returns the transactions of the account with deadline
// inside [From, To], sorted by deadline, and the totals of the period. The
// status, uuid and tag filters narrow the rows but never the totals.
func GetTransactions(st *storage.Storage, account *Account, options ListOptions) ([]*Transaction, []Total, error) {
	all, err := GetTransactionsSimple(st, account)
	if err != nil {
		return nil, nil, err
	}

	totals := newTotals(account)
	result := []*Transaction{}

	for _, t := range all {

		if t.Deadline.Before(options.From) || t.Deadline.After(options.To) {
			if t.Deadline.Before(options.From) && t.IsPaid() {
				totals[TotalPreviousBalance].Value = totals[TotalPreviousBalance].Value.Add(t.Value)
			}
			continue
		}

		statusOk := false
		if t.IsPaid() {
			totals[TotalCurrentBalance].Value = totals[TotalCurrentBalance].Value.Add(t.Value)
			if t.Value.IsNegative() {
				totals[TotalExpenses].Value = totals[TotalExpenses].Value.Add(t.Value)
			} else {
				totals[TotalIncomes].Value = totals[TotalIncomes].Value.Add(t.Value)
			}
			statusOk = options.Status == Paid || options.Status == All
		} else {
			if t.Value.IsNegative() {
				totals[TotalPayable].Value = totals[TotalPayable].Value.Add(t.Value)
			} else {
				totals[TotalToReceive].Value = totals[TotalToReceive].Value.Add(t.Value)
			}
			statusOk = options.Status == ForPay || options.Status == All
		}

		if !statusOk {
			continue
		}
		if options.Uuid != "" && !storage.MatchId(t.Uuid, options.Uuid) {
			continue
		}
		if options.Tag != "" && !hasTag(t, options.Tag) {
			continue
		}

		result = append(result, t)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Deadline.Before(result[j].Deadline)
	})

	return result, totals, nil
}

func hasTag(t *Transaction, id string) bool {
	for _, tag := range t.Tags {
		if storage.MatchId(tag.Uuid, id) {
			return true
		}
	}
	return false
}

// MonthRange returns the first and the last day of the month of t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}
