package ledger

import (
	"fmt"

	"github.com/fernandobatels/blitz-money/storage"
)

// reconcile makes b mirror a: same absolute value with the opposite sign,
// same deadline and same paid date.
func reconcile(a, b *Transaction) {
	if !a.Value.Abs().Equal(b.Value.Abs()) {
		b.Value = a.Value
	}

	b.Deadline = a.Deadline
	b.PaidIn = a.PaidIn

	if a.Value.Equal(b.Value) {
		b.Value = a.Value.Neg()
	}
}

func link(a, b *Transaction) {
	a.Transfer = b
	b.Transfer = a
	a.TransferID = b.Uuid
	b.TransferID = a.Uuid
}

// StoreTransfer saves both halves of a transfer. When any of them is new the
// uuids are only known after the first save, so a is written, then b with
// the uuid of a, then a again with the uuid of b.
func StoreTransfer(st *storage.Storage, a, b *Transaction) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: transfer needs both transactions", ErrIncomplete)
	}

	reconcile(a, b)
	link(a, b)

	_, err := st.StartSection(SectionTransactions)
	if err != nil {
		return err
	}
	data := st.Section(SectionTransactions)

	if a.Uuid != "" && b.Uuid != "" {
		_, err = data.Save(a)
		if err != nil {
			return err
		}
		_, err = data.Save(b)
		return err
	}

	a.Uuid, err = data.Save(a)
	if err != nil {
		return err
	}

	b.TransferID = a.Uuid
	b.Uuid, err = data.Save(b)
	if err != nil {
		return err
	}

	a.TransferID = b.Uuid
	_, err = data.Save(a)
	return err
}

// MakeTransactionOrTransfer stores t as a plain transaction when it has a
// contact. Without contact t becomes a transfer to the account counterpart.
func MakeTransactionOrTransfer(st *storage.Storage, t *Transaction, counterpart string) error {
	if t.Contact != nil {
		_, err := StoreTransaction(st, t)
		return err
	}

	destination, err := GetAccount(st, counterpart)
	if err != nil {
		return fmt.Errorf("destination account: %w", err)
	}

	twin, err := t.Twin(st)
	if err != nil {
		return err
	}
	if twin == nil {
		twin = &Transaction{
			Description:  t.Description,
			Value:        t.Value,
			Contact:      t.Contact,
			Deadline:     t.Deadline,
			PaidIn:       t.PaidIn,
			Tags:         append([]Tag{}, t.Tags...),
			Observations: t.Observations,
		}
	}
	twin.Account = destination

	return StoreTransfer(st, t, twin)
}

// StoreRepetitions stores the template repetitions times, intervalDays apart.
// Descriptions get a " [i/n]" suffix when there is more than one copy.
func StoreRepetitions(st *storage.Storage, template *Transaction, counterpart string, repetitions, intervalDays int) ([]*Transaction, error) {
	if repetitions <= 0 {
		repetitions = 1
	}
	if intervalDays <= 0 {
		intervalDays = 1
	}

	stored := []*Transaction{}
	deadline, paidIn := template.Deadline, template.PaidIn

	for i := 0; i < repetitions; i++ {
		t := *template
		t.Uuid = ""
		t.TransferID = ""
		t.Transfer = nil
		t.Tags = append([]Tag{}, template.Tags...)
		t.Deadline = deadline
		t.PaidIn = paidIn

		if repetitions > 1 {
			t.Description = fmt.Sprintf("%s [%d/%d]", template.Description, i+1, repetitions)
		}

		err := MakeTransactionOrTransfer(st, &t, counterpart)
		if err != nil {
			return stored, err
		}
		stored = append(stored, &t)

		deadline = deadline.AddDate(0, 0, intervalDays)
		if !paidIn.IsZero() {
			paidIn = paidIn.AddDate(0, 0, intervalDays)
		}
	}

	return stored, nil
}
