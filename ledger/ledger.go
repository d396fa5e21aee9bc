package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernandobatels/blitz-money/storage"
)

const (
	SectionAccounts     = "accounts"
	SectionContacts     = "contacts"
	SectionTags         = "tags"
	SectionTransactions = "transactions"
	SectionForecasts    = "forecasts"
	SectionRules        = "rules"
)

const DateLayout = "2006-01-02"

var (
	ErrBrokenTransfer   = errors.New("transfer twin not found")
	ErrUseStoreTransfer = errors.New("transfers must be stored with StoreTransfer")
	ErrIncomplete       = errors.New("incomplete record")
)

var now = time.Now

type model[T any] interface {
	*T
	storage.Model
}

// list decodes every row of the section, in file order. A section that was
// never started is just empty.
func list[T any, PT model[T]](st *storage.Storage, section string, filter map[string]interface{}) ([]*T, error) {
	result := []*T{}

	data := st.Section(section)
	for {
		item := new(T)
		err := data.NextMatch(filter, PT(item))
		if errors.Is(err, storage.ErrNoMoreRows) || errors.Is(err, storage.ErrSectionNotFound) {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
}

// find looks a row up by uuid, uuid prefix or short id.
func find[T any, PT model[T]](st *storage.Storage, section, id string, depth int) (*T, error) {
	data := st.Section(section)

	found, err := data.FindByID(id)
	if errors.Is(err, storage.ErrSectionNotFound) {
		found, err = false, nil
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s '%s': %w", section, id, storage.ErrNotFound)
	}

	item := new(T)
	err = data.NextDepth(PT(item), depth)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func save(st *storage.Storage, section string, m storage.Model) (string, error) {
	_, err := st.StartSection(section)
	if err != nil {
		return "", err
	}

	return st.Section(section).Save(m)
}

func remove(st *storage.Storage, section, id string) error {
	return st.Section(section).RemoveByID(id)
}

func ref[T any](v T) *T {
	return &v
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func fromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func FormatMoney(currency string, value decimal.Decimal) string {
	return currency + " " + value.StringFixed(2)
}
