package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/fernandobatels/blitz-money/i18n"
	"github.com/fernandobatels/blitz-money/ledger"
)

const ProductId = "-//blitz-money//bmoney"

var now = time.Now

// Export renders one all-day event per transaction, placed at its deadline.
func Export(transactions []*ledger.Transaction, texts *i18n.Texts) string {
	cal := ics.NewCalendar()
	cal.SetProductId(ProductId)
	cal.SetMethod(ics.MethodPublish)

	stamp := now()
	for _, t := range transactions {
		event := cal.AddEvent(t.Uuid)
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(t.Deadline)
		event.SetSummary(t.Description + " - " + t.Counterpart())
		if t.Contact != nil {
			event.SetLocation(t.Contact.CityLocation)
		}
		event.SetDescription(description(t, texts))
	}

	return cal.Serialize()
}

func description(t *ledger.Transaction, texts *i18n.Texts) string {
	currency, account := "", ""
	if t.Account != nil {
		currency, account = t.Account.Currency, t.Account.Name
	}

	lines := []string{
		fmt.Sprintf("%s: %s", texts.Text("value"), texts.Money(currency, t.Value)),
		fmt.Sprintf("%s: %s", texts.Text("account"), account),
	}
	if t.Observations != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", texts.Text("observations"), t.Observations))
	}
	lines = append(lines, texts.Text("id")+": "+t.Id())

	return strings.Join(lines, "\n")
}
