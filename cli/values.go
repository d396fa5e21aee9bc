package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fernandobatels/blitz-money/ledger"
	"github.com/fernandobatels/blitz-money/output"
)

var now = time.Now

// parseDate accepts YYYY-MM-DD and "today". An empty value is the zero date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return time.Time{}, nil
	case "today":
		today := now()
		return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	d, err := ledger.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", s)
	}
	return d, nil
}

// parseMoney accepts both decimal point and decimal comma.
func parseMoney(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value '%s'", s)
	}
	return v, nil
}

func (s *session) money(account *ledger.Account, v decimal.Decimal) string {
	currency := ""
	if account != nil {
		currency = account.Currency
	}
	return s.app.Texts.Money(currency, v)
}

func (s *session) valueCell(account *ledger.Account, v decimal.Decimal) output.Cell {
	return output.Value(s.money(account, v), v)
}

func (s *session) tags(ids []string) ([]ledger.Tag, error) {
	tags := []ledger.Tag{}
	for _, id := range ids {
		tag, err := ledger.GetTag(s.app.Storage, strings.TrimSpace(id))
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func tagNames(tags []ledger.Tag) string {
	names := []string{}
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return strings.Join(names, ", ")
}

func (s *session) table(keys ...string) *output.Table {
	columns := make([]string, len(keys))
	for i, key := range keys {
		columns[i] = s.app.Texts.Text(key)
	}
	return output.NewTable(columns...)
}

func (s *session) print(cmd *cobra.Command, table *output.Table) error {
	if s.config.Csv {
		return table.RenderCsv(cmd.OutOrStdout())
	}
	return table.Render(cmd.OutOrStdout())
}

func (s *session) say(cmd *cobra.Command, key string, args ...interface{}) {
	fmt.Fprintln(cmd.OutOrStdout(), s.app.Texts.Textf(key, args...))
}
