package importer

import (
	"strings"
	"testing"

	. "github.com/fulldump/biff"
)

func TestReadCsv(t *testing.T) {
	Environment(func(filename string) {

		writeFile(filename, "date,amount,memo\n2018-10-03,-45.90,SUPERMARKET\n2018-10-05,1500,SALARY\n")

		pending, err := ReadCsv(filename, DefaultCsvOptions())
		AssertNil(err)
		AssertEqual(len(pending), 2)

		AssertEqual(pending[0].PostedAt.Format("2006-01-02"), "2018-10-03")
		AssertEqual(pending[0].Amount.String(), "-45.9")
		AssertEqual(pending[0].Memo, "SUPERMARKET")
		AssertEqual(pending[0].InstitutionID, "2018-10-03-SUPERMARKET")
	})
}

func TestReadCsv_DecimalComma(t *testing.T) {
	options := CsvOptions{Delimiter: ";", Posted: 2, Amount: 0, Memo: 1}

	pending, err := ParseCsv(strings.NewReader("-12,5;bakery;2018-10-07\n"), options)
	AssertNil(err)
	AssertEqual(len(pending), 1)
	AssertEqual(pending[0].Amount.String(), "-12.5")
	AssertEqual(pending[0].Memo, "bakery")
	AssertEqual(pending[0].InstitutionID, "2018-10-07-bakery")
}

func TestReadCsv_InvalidDate(t *testing.T) {
	_, err := ParseCsv(strings.NewReader("03/10/2018,1,x\n"), CsvOptions{Delimiter: ",", Posted: 0, Amount: 1, Memo: 2})
	AssertNotNil(err)
}

func TestReadCsv_MissingColumn(t *testing.T) {
	_, err := ParseCsv(strings.NewReader("2018-10-03,1\n"), CsvOptions{Delimiter: ",", Posted: 0, Amount: 1, Memo: 2})
	AssertNotNil(err)
	AssertEqual(err.Error(), "csv line 1: column 2 (memo) not found")
}
