package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernandobatels/blitz-money/storage"
)

type Account struct {
	Uuid            string
	Bank            string
	Name            string
	OpenBalance     decimal.Decimal
	OpenBalanceDate time.Time
	Currency        string
}

type accountPayload struct {
	Bank            *string  `json:"bank"`
	Name            *string  `json:"name"`
	OpenBalance     *float64 `json:"open_balance"`
	OpenBalanceDate string   `json:"open_balance_date,omitempty"`
	Currency        *string  `json:"currency"`
}

func (a *Account) Decode(row *storage.Row, st *storage.Storage, depth int) error {
	payload := &accountPayload{}
	err := row.Unmarshal(payload)
	if err != nil {
		return err
	}

	switch {
	case payload.Bank == nil:
		return row.Missing("bank")
	case payload.Name == nil:
		return row.Missing("name")
	case payload.OpenBalance == nil:
		return row.Missing("open_balance")
	case payload.Currency == nil:
		return row.Missing("currency")
	}

	*a = Account{
		Uuid:        row.Uuid,
		Bank:        *payload.Bank,
		Name:        *payload.Name,
		OpenBalance: fromFloat(*payload.OpenBalance),
		Currency:    *payload.Currency,
	}

	if payload.OpenBalanceDate != "" {
		a.OpenBalanceDate, err = ParseDate(payload.OpenBalanceDate)
		if err != nil {
			return row.Invalid("open_balance_date", err)
		}
	}

	return nil
}

func (a *Account) Encode() (string, bool, interface{}, error) {
	return a.Uuid, a.Uuid == "", &accountPayload{
		Bank:            ref(a.Bank),
		Name:            ref(a.Name),
		OpenBalance:     ref(toFloat(a.OpenBalance)),
		OpenBalanceDate: FormatDate(a.OpenBalanceDate),
		Currency:        ref(a.Currency),
	}, nil
}

func (a *Account) Id() string {
	return storage.UuidToId(a.Uuid)
}

// FormatValue renders v with the currency of the account.
func (a *Account) FormatValue(v decimal.Decimal) string {
	return FormatMoney(a.Currency, v)
}

func GetAccounts(st *storage.Storage) ([]*Account, error) {
	return list[Account](st, SectionAccounts, nil)
}

func GetAccount(st *storage.Storage, id string) (*Account, error) {
	return find[Account](st, SectionAccounts, id, storage.ShallowDepth)
}

func StoreAccount(st *storage.Storage, account *Account) (string, error) {
	id, err := save(st, SectionAccounts, account)
	if err != nil {
		return "", err
	}
	account.Uuid = id
	return id, nil
}

func RemoveAccount(st *storage.Storage, id string) error {
	return remove(st, SectionAccounts, id)
}
