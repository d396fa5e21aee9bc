package importer

import (
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fernandobatels/blitz-money/ledger"
)

func TestBuild_New(t *testing.T) {
	Environment(func(filename string) {

		st, account, _ := populate(filename)
		defer st.Close()

		pending, _ := ParseOfx(statement, false)

		transaction, err := pending[0].Build(st, account)
		AssertNil(err)
		AssertEqual(transaction.Uuid, "")
		AssertEqual(transaction.Description, "SUPERMARKET")
		AssertEqual(transaction.Value.String(), "-45.9")
		AssertEqual(ledger.FormatDate(transaction.Deadline), "2018-10-03")
		AssertEqual(ledger.FormatDate(transaction.PaidIn), "2018-10-03")
		AssertEqual(transaction.OfxFitid, "2018100301")
		AssertEqual(transaction.OfxMemo, "SUPERMARKET")
		AssertEqual(transaction.Account.Uuid, account.Uuid)
	})
}

func TestBuild_AlreadyImported(t *testing.T) {
	Environment(func(filename string) {

		st, account, contact := populate(filename)
		defer st.Close()

		pending, _ := ParseOfx(statement, false)

		first, _ := pending[0].Build(st, account)
		first.Contact = contact
		first.Description = "groceries"
		id, err := ledger.StoreTransaction(st, first)
		AssertNil(err)

		// Run
		err = BuildIndex(st)
		AssertNil(err)
		again, err := pending[0].Build(st, account)

		// Check
		AssertNil(err)
		AssertEqual(again.Uuid, id)
		AssertEqual(again.Description, "groceries")
		AssertEqual(st.Index().Len(), 1)

		other, err := pending[1].Build(st, account)
		AssertNil(err)
		AssertEqual(other.Uuid, "")
	})
}

func TestBuild_OtherAccount(t *testing.T) {
	Environment(func(filename string) {

		st, account, contact := populate(filename)
		defer st.Close()

		savings := &ledger.Account{Name: "savings", Bank: "bank B", Currency: "R$"}
		ledger.StoreAccount(st, savings)

		pending, _ := ParseOfx(statement, false)
		first, _ := pending[0].Build(st, account)
		first.Contact = contact
		ledger.StoreTransaction(st, first)
		BuildIndex(st)

		transaction, err := pending[0].Build(st, savings)
		AssertNil(err)
		AssertEqual(transaction.Uuid, "")
	})
}
