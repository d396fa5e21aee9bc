package ledger

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernandobatels/blitz-money/storage"
)

func Environment(f func(filename string)) {
	filename := fmt.Sprintf("temp-%v", time.Now().UnixNano())
	defer os.Remove(filename)

	f(filename)
}

func date(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// populate stores two accounts, two contacts and four transactions. Lists
// come newest first, so accounts[0] is "account BB" and contacts[0] is
// "contact 2".
func populate(filename string) *storage.Storage {
	st := storage.NewStorage(filename, nil)

	StoreAccount(st, &Account{Name: "account AA", Bank: "bank A", Currency: "R$", OpenBalance: decimal.Zero, OpenBalanceDate: date("2018-01-01")})
	StoreAccount(st, &Account{Name: "account BB", Bank: "bank B", Currency: "R$", OpenBalance: money("35")})
	accounts, _ := GetAccounts(st)

	StoreContact(st, &Contact{Name: "contact 1", CityLocation: "city A"})
	StoreContact(st, &Contact{Name: "contact 2", CityLocation: "city B"})
	contacts, _ := GetContacts(st)

	StoreTransaction(st, &Transaction{Description: "transaction 1", Value: money("10.00"), Account: accounts[0], Contact: contacts[1], Deadline: date("2018-10-01")})
	StoreTransaction(st, &Transaction{Description: "transaction 2", Value: money("-125.53"), Account: accounts[0], Contact: contacts[0], Deadline: date("2018-10-01")})
	StoreTransaction(st, &Transaction{Description: "transaction 3", Value: money("25.58"), Account: accounts[1], Contact: contacts[0], Deadline: date("2018-10-15")})
	StoreTransaction(st, &Transaction{Description: "transaction 4", Value: money("159.02"), Account: accounts[0], Contact: contacts[1], Deadline: date("2018-08-23")})

	return st
}

func october() ListOptions {
	return ListOptions{From: date("2018-10-01"), To: date("2018-10-31"), Status: All}
}

func totalValues(totals []Total) []string {
	values := []string{}
	for _, total := range totals {
		values = append(values, total.Value.String())
	}
	return values
}
