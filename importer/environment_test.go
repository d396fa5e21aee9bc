package importer

import (
	"fmt"
	"os"
	"time"

	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/storage"
)

func Environment(f func(filename string)) {
	filename := fmt.Sprintf("temp-%v", time.Now().UnixNano())
	defer os.Remove(filename)

	f(filename)
}

func writeFile(filename, content string) {
	err := os.WriteFile(filename, []byte(content), 0644)
	if err != nil {
		panic(err)
	}
}

func populate(filename string) (*storage.Storage, *ledger.Account, *ledger.Contact) {
	st := storage.NewStorage(filename, nil)

	account := &ledger.Account{Name: "checking", Bank: "bank A", Currency: "R$"}
	_, err := ledger.StoreAccount(st, account)
	if err != nil {
		panic(err)
	}

	contact := &ledger.Contact{Name: "market", CityLocation: "city A"}
	_, err = ledger.StoreContact(st, contact)
	if err != nil {
		panic(err)
	}

	return st, account, contact
}

const statement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102

<OFX>
<BANKMSGSRSV1>
<STMTTRNRS>
<STMTRS>
<CURDEF>BRL</CURDEF>
<BANKTRANLIST>
<DTSTART>20181001</DTSTART>
<DTEND>20181031</DTEND>
<STMTTRN>
<TRNTYPE>DEBIT</TRNTYPE>
<DTPOSTED>20181003120000[-3:BRT]</DTPOSTED>
<TRNAMT>-45.90</TRNAMT>
<FITID>2018100301</FITID>
<MEMO>SUPERMARKET</MEMO>
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT</TRNTYPE>
<DTPOSTED>20181005</DTPOSTED>
<TRNAMT>1500.00</TRNAMT>
<FITID>2018100502</FITID>
<MEMO>SALARY</MEMO>
</STMTTRN>
</BANKTRANLIST>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`
