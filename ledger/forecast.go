package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernandobatels/blitz-money/storage"
)

// RemainingUuid identifies the synthetic transactions built from forecasts.
const RemainingUuid = "00000000-0000-0000-0000-000000000000"

// Forecast is the expected amount for a tag in an account.
type Forecast struct {
	Uuid    string
	Account *Account
	Tag     *Tag
	Value   decimal.Decimal
}

type forecastPayload struct {
	Account *string  `json:"account"`
	Tag     *string  `json:"tag"`
	Value   *float64 `json:"value"`
}

func (f *Forecast) Decode(row *storage.Row, st *storage.Storage, depth int) error {
	payload := &forecastPayload{}
	err := row.Unmarshal(payload)
	if err != nil {
		return err
	}

	switch {
	case payload.Tag == nil:
		return row.Missing("tag")
	case payload.Account == nil:
		return row.Missing("account")
	case payload.Value == nil:
		return row.Missing("value")
	}

	*f = Forecast{
		Uuid:  row.Uuid,
		Value: fromFloat(*payload.Value),
	}

	f.Tag, err = GetTag(st, *payload.Tag)
	if err != nil {
		return row.Invalid("tag", err)
	}

	f.Account, err = GetAccount(st, *payload.Account)
	if err != nil {
		return row.Invalid("account", err)
	}

	return nil
}

func (f *Forecast) Encode() (string, bool, interface{}, error) {
	if f.Account == nil || f.Tag == nil {
		return "", false, nil, fmt.Errorf("%w: forecast needs account and tag", ErrIncomplete)
	}

	return f.Uuid, f.Uuid == "", &forecastPayload{
		Account: ref(f.Account.Uuid),
		Tag:     ref(f.Tag.Uuid),
		Value:   ref(toFloat(f.Value)),
	}, nil
}

func (f *Forecast) Id() string {
	return storage.UuidToId(f.Uuid)
}

func GetForecasts(st *storage.Storage) ([]*Forecast, error) {
	return list[Forecast](st, SectionForecasts, nil)
}

func GetForecast(st *storage.Storage, id string) (*Forecast, error) {
	return find[Forecast](st, SectionForecasts, id, storage.ShallowDepth)
}

func StoreForecast(st *storage.Storage, forecast *Forecast) (string, error) {
	id, err := save(st, SectionForecasts, forecast)
	if err != nil {
		return "", err
	}
	forecast.Uuid = id
	return id, nil
}

func RemoveForecast(st *storage.Storage, id string) error {
	return remove(st, SectionForecasts, id)
}

// RemainingTransactions builds one unsaved transaction per forecast of the
// account with the value still missing to reach it, given the transactions
// already in the period.
func RemainingTransactions(st *storage.Storage, account *Account, transactions []*Transaction, endDate time.Time) ([]*Transaction, error) {
	attained := map[string]decimal.Decimal{}
	for _, t := range transactions {
		for _, tag := range t.Tags {
			attained[tag.Uuid] = attained[tag.Uuid].Add(t.Value)
		}
	}

	forecasts, err := GetForecasts(st)
	if err != nil {
		return nil, err
	}

	remaining := []*Transaction{}
	for _, f := range forecasts {
		if f.Account.Uuid != account.Uuid {
			continue
		}

		attain := attained[f.Tag.Uuid]

		remain := f.Value.Sub(attain)
		if (f.Value.IsNegative() && remain.IsPositive()) || (!f.Value.IsNegative() && remain.IsNegative()) {
			remain = decimal.Zero
		}

		percent := decimal.Zero
		if !f.Value.IsZero() {
			percent = attain.Div(f.Value).Mul(decimal.NewFromInt(100))
		}

		remaining = append(remaining, &Transaction{
			Uuid:        RemainingUuid,
			Description: fmt.Sprintf("%s: %s of %s (%s%%)", f.Tag.Name, f.Account.FormatValue(attain), f.Account.FormatValue(f.Value), percent.StringFixed(0)),
			Value:       remain,
			Account:     f.Account,
			Contact:     &Contact{Name: "Remaining", CityLocation: "Remaining"},
			Deadline:    endDate,
			CreatedAt:   now(),
		})
	}

	return remaining, nil
}
