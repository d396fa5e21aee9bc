package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fernandobatels/blitz-money/ledger"
)

type CsvOptions struct {
	Delimiter string
	Posted    int // column of the posted date, YYYY-MM-DD
	Amount    int
	Memo      int
	HasHeader bool
}

func DefaultCsvOptions() CsvOptions {
	return CsvOptions{
		Delimiter: ",",
		Posted:    0,
		Amount:    1,
		Memo:      2,
		HasHeader: true,
	}
}

// ReadCsv reads one pending transaction per row. Amounts may use a decimal
// comma. The institution id is made of the posted date and the memo.
func ReadCsv(path string, options CsvOptions) ([]*PendingTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	return ParseCsv(f, options)
}

func ParseCsv(r io.Reader, options CsvOptions) ([]*PendingTransaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if options.Delimiter != "" {
		delimiter, _ := utf8.DecodeRuneInString(options.Delimiter)
		reader.Comma = delimiter
	}

	result := []*PendingTransaction{}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if line == 1 && options.HasHeader {
			continue
		}

		pending, err := csvPending(record, options)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		result = append(result, pending)
	}
}

func csvPending(record []string, options CsvOptions) (*PendingTransaction, error) {
	column := func(i int, name string) (string, error) {
		if i < 0 || i >= len(record) {
			return "", fmt.Errorf("column %d (%s) not found", i, name)
		}
		return strings.TrimSpace(record[i]), nil
	}

	posted, err := column(options.Posted, "posted at")
	if err != nil {
		return nil, err
	}
	postedAt, err := time.Parse(ledger.DateLayout, posted)
	if err != nil {
		return nil, fmt.Errorf("posted at: %w", err)
	}

	amountText, err := column(options.Amount, "amount")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(amountText)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	memo, err := column(options.Memo, "memo")
	if err != nil {
		return nil, err
	}

	return &PendingTransaction{
		PostedAt:      postedAt,
		Amount:        amount,
		InstitutionID: posted + "-" + memo,
		Memo:          memo,
	}, nil
}
