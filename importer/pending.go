package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/storage"
)

// PendingTransaction is a movement read from a bank file, not stored yet.
type PendingTransaction struct {
	PostedAt      time.Time
	Amount        decimal.Decimal
	InstitutionID string
	Memo          string
}

func indexKey(account *ledger.Account) string {
	return "fitid_" + account.Uuid
}

// BuildIndex registers every imported transaction of every account by its
// institution id, so files imported again are recognized.
func BuildIndex(st *storage.Storage) error {
	accounts, err := ledger.GetAccounts(st)
	if err != nil {
		return err
	}

	for _, account := range accounts {
		transactions, err := ledger.GetTransactionsSimple(st, account)
		if err != nil {
			return fmt.Errorf("index account '%s': %w", account.Name, err)
		}

		for _, t := range transactions {
			Remember(st, t)
		}
	}

	return nil
}

// Remember indexes a stored transaction by its institution id.
func Remember(st *storage.Storage, t *ledger.Transaction) {
	if t.OfxFitid == "" || t.Uuid == "" || t.Account == nil {
		return
	}
	st.SetIndex(ledger.SectionTransactions, indexKey(t.Account), t.OfxFitid, t.Uuid)
}

// Build returns the transaction already imported with the same institution
// id, or a new unsaved one paid at the posted date.
func (p *PendingTransaction) Build(st *storage.Storage, account *ledger.Account) (*ledger.Transaction, error) {
	data := st.Section(ledger.SectionTransactions)

	found, err := data.FindByIndex(indexKey(account), p.InstitutionID)
	if err != nil && !errors.Is(err, storage.ErrSectionNotFound) {
		return nil, err
	}

	if found {
		existing := &ledger.Transaction{}
		err := data.Next(existing)
		if err != nil {
			return nil, err
		}
		return existing, nil
	}

	return &ledger.Transaction{
		Account:     account,
		Description: p.Memo,
		Value:       p.Amount,
		Deadline:    p.PostedAt,
		PaidIn:      p.PostedAt,
		OfxMemo:     p.Memo,
		OfxFitid:    p.InstitutionID,
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}
