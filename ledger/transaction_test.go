package ledger

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	. "github.com/fulldump/biff"

	"github.com/fernandobatels/blitz-money/storage"
)

func descriptions(transactions []*Transaction) []string {
	result := []string{}
	for _, t := range transactions {
		result = append(result, t.Description)
	}
	return result
}

func TestGetTransactions(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()
		accounts, _ := GetAccounts(st)
		AssertEqual(accounts[0].Name, "account BB")

		// Run
		transactions, _, err := GetTransactions(st, accounts[0], october())

		// Check
		AssertNil(err)
		AssertEqual(descriptions(transactions), []string{"transaction 2", "transaction 1"})
	})
}

func TestGetTransactionsSimple(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()

		// Run
		transactions, err := GetTransactionsSimple(st, mustFirstAccount(st))

		// Check
		AssertNil(err)
		AssertEqual(descriptions(transactions), []string{"transaction 4", "transaction 2", "transaction 1"})
	})
}

func TestGetTransactions_SortedByDeadline(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()
		account := mustFirstAccount(st)

		// Run
		transactions, _, _ := GetTransactions(st, account, ListOptions{From: date("2018-01-01"), To: date("2018-12-31")})

		// Check
		AssertEqual(descriptions(transactions), []string{"transaction 4", "transaction 2", "transaction 1"})
	})
}

func TestGetTransactions_Totals(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()
		accounts, _ := GetAccounts(st)

		// Run
		transactionsA, totalsA, err := GetTransactions(st, accounts[0], october())

		// Check
		AssertNil(err)
		AssertEqual(len(transactionsA), 2)
		AssertEqual(len(totalsA), 6)
		AssertEqual(totalsA[0].Label, "Expenses(payable)")
		AssertEqual(totalsA[1].Label, "Incomes(to receive)")
		AssertEqual(totalsA[2].Label, "Expenses")
		AssertEqual(totalsA[3].Label, "Incomes")
		AssertEqual(totalsA[4].Label, "Previous balance")
		AssertEqual(totalsA[5].Label, "Current balance")
		AssertEqual(totalValues(totalsA), []string{"-125.53", "10", "0", "0", "35", "35"})

		// Run
		paid := transactionsA[0]
		paid.PaidIn = date("2018-10-25")
		_, err = StoreTransaction(st, paid)
		AssertNil(err)

		// Check
		transactionsB, totalsB, _ := GetTransactions(st, accounts[0], october())
		AssertEqual(len(transactionsB), 2)
		AssertEqual(totalValues(totalsB), []string{"0", "10", "-125.53", "0", "35", "-90.53"})

		transactionsC, totalsC, _ := GetTransactions(st, accounts[1], october())
		AssertEqual(len(transactionsC), 1)
		AssertEqual(totalValues(totalsC), []string{"0", "25.58", "0", "0", "0", "0"})
	})
}

func TestGetTransactions_PreviousBalance(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()
		account := mustFirstAccount(st)
		transactions, _ := GetTransactionsSimple(st, account)
		Pay(st, transactions[0], date("2018-08-23")) // transaction 4

		// Run
		_, totals, _ := GetTransactions(st, account, october())

		// Check
		AssertEqual(totals[TotalPreviousBalance].Value.String(), "194.02")
		AssertEqual(totals[TotalCurrentBalance].Value.String(), "35")
	})
}

func TestGetTransactions_Status(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()
		account := mustFirstAccount(st)
		first, _, _ := GetTransactions(st, account, ListOptions{From: date("2018-10-01"), To: date("2018-10-01")})
		AssertEqual(len(first), 2)
		paid := first[0]
		paid.PaidIn = date("2018-10-25")
		StoreTransaction(st, paid)

		expected := []string{"0", "10", "-125.53", "0", "35", "-90.53"}

		// Run
		all, totalsAll, _ := GetTransactions(st, account, october())
		paidOnly, totalsPaid, _ := GetTransactions(st, account, ListOptions{From: date("2018-10-01"), To: date("2018-10-31"), Status: Paid})
		forPay, totalsForPay, _ := GetTransactions(st, account, ListOptions{From: date("2018-10-01"), To: date("2018-10-31"), Status: ForPay})

		// Check
		AssertEqual(len(all), 2)
		AssertEqual(len(paidOnly), 1)
		AssertEqual(paidOnly[0].Description, "transaction 2")
		AssertEqual(len(forPay), 1)
		AssertEqual(forPay[0].Description, "transaction 1")
		AssertEqual(totalValues(totalsAll), expected)
		AssertEqual(totalValues(totalsPaid), expected)
		AssertEqual(totalValues(totalsForPay), expected)
	})
}

func TestGetTransactions_UuidAndTagFilters(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()
		account := mustFirstAccount(st)
		tagId, _ := StoreTag(st, &Tag{Name: "salary"})
		tag, _ := GetTag(st, tagId)
		all, _, _ := GetTransactions(st, account, october())
		tagged := all[1] // transaction 1
		tagged.Tags = []Tag{*tag}
		StoreTransaction(st, tagged)

		// Run
		byUuid, totalsByUuid, _ := GetTransactions(st, account, ListOptions{From: date("2018-10-01"), To: date("2018-10-31"), Uuid: all[0].Id()})
		byTag, _, _ := GetTransactions(st, account, ListOptions{From: date("2018-10-01"), To: date("2018-10-31"), Tag: tagId})

		// Check
		AssertEqual(descriptions(byUuid), []string{"transaction 2"})
		AssertEqual(totalValues(totalsByUuid), []string{"-125.53", "10", "0", "0", "35", "35"})
		AssertEqual(descriptions(byTag), []string{"transaction 1"})
	})
}

func TestGetTransaction(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()
		transactions, _, _ := GetTransactions(st, mustFirstAccount(st), october())

		// Run
		transaction, err := GetTransaction(st, transactions[0].Uuid)
		_, errMissing := GetTransaction(st, "NOOOO")

		// Check
		AssertNil(err)
		AssertEqual(transaction.Description, "transaction 2")
		AssertEqual(transaction.Contact.Name, "contact 2")
		AssertEqual(transaction.Account.Name, "account BB")
		AssertFalse(transaction.CreatedAt.IsZero())
		AssertTrue(errors.Is(errMissing, storage.ErrNotFound))
	})
}

func TestStoreTransaction(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()
		account := mustFirstAccount(st)
		contacts, _ := GetContacts(st)

		// Run
		_, err := StoreTransaction(st, &Transaction{Description: "transaction 5", Value: money("20"), Account: account, Contact: contacts[0], Deadline: date("2018-10-01")})

		// Check
		AssertNil(err)
		transactions, _, _ := GetTransactions(st, account, october())
		AssertEqual(descriptions(transactions), []string{"transaction 5", "transaction 2", "transaction 1"})
	})
}

func TestStoreTransaction_RoundTrip(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		now = func() time.Time { return time.Date(2018, 10, 2, 10, 30, 0, 0, time.UTC) }
		defer func() { now = time.Now }()
		st := populate(filename)
		defer st.Close()
		account := mustFirstAccount(st)
		contacts, _ := GetContacts(st)
		original := &Transaction{
			Description:  "rent",
			Value:        money("-800.10"),
			Account:      account,
			Contact:      contacts[0],
			Deadline:     date("2018-10-05"),
			PaidIn:       date("2018-10-04"),
			Observations: "october",
			OfxMemo:      "RENT",
			OfxFitid:     "F001",
		}

		// Run
		id, err := StoreTransaction(st, original)

		// Check
		AssertNil(err)
		obtained, err := GetTransaction(st, id)
		AssertNil(err)
		AssertEqual(obtained.Uuid, id)
		AssertEqual(obtained.Description, original.Description)
		AssertTrue(obtained.Value.Equal(original.Value))
		AssertEqual(obtained.Account, original.Account)
		AssertEqual(obtained.Contact, original.Contact)
		AssertEqual(obtained.Deadline, original.Deadline)
		AssertEqual(obtained.PaidIn, original.PaidIn)
		AssertTrue(obtained.CreatedAt.Equal(original.CreatedAt))
		AssertTrue(obtained.UpdatedAt.IsZero())
		AssertEqual(obtained.Observations, "october")
		AssertEqual(obtained.OfxFitid, "F001")
		AssertFalse(obtained.IsTransfer())
	})
}

func TestStoreTransaction_RejectsTransfers(t *testing.T) {
	Environment(func(filename string) {

		st := populate(filename)
		defer st.Close()

		_, err := StoreTransaction(st, &Transaction{TransferID: "x"})

		AssertTrue(errors.Is(err, ErrUseStoreTransfer))
	})
}

func TestStoreTransaction_Incomplete(t *testing.T) {
	Environment(func(filename string) {

		st := populate(filename)
		defer st.Close()

		_, err := StoreTransaction(st, &Transaction{Description: "no account", Deadline: date("2018-10-01")})

		AssertTrue(errors.Is(err, ErrIncomplete))
	})
}

func TestRemoveTransaction(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		defer st.Close()
		transactions, _, _ := GetTransactions(st, mustFirstAccount(st), october())
		id := transactions[0].Uuid
		_, err := GetTransaction(st, id)
		AssertNil(err)

		// Run
		err = RemoveTransaction(st, id)

		// Check
		AssertNil(err)
		_, err = GetTransaction(st, id)
		AssertTrue(errors.Is(err, storage.ErrNotFound))
	})
}

func TestTransaction_MalformedRow(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := populate(filename)
		st.Close()
		content, _ := os.ReadFile(filename)
		broken := strings.Replace(string(content), `"deadline":"2018-08-23",`, "", 1)
		os.WriteFile(filename, []byte(broken), 0666)

		// Run
		_, err := GetTransactionsSimple(st, mustFirstAccount(st))

		// Check
		malformed := &storage.MalformedRecordError{}
		AssertTrue(errors.As(err, &malformed))
		AssertEqual(malformed.Field, "deadline")
	})
}
