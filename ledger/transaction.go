package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernandobatels/blitz-money/storage"
)

// Transaction is a dated money movement of an account. A transaction paired
// with another one of a different account is a transfer: TransferID holds
// the uuid of the twin and Transfer the twin itself once resolved.
type Transaction struct {
	Uuid         string
	Account      *Account
	Contact      *Contact
	Description  string
	Value        decimal.Decimal
	Deadline     time.Time
	PaidIn       time.Time // zero while payable
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TransferID   string
	Transfer     *Transaction
	Tags         []Tag
	Observations string
	OfxMemo      string
	OfxFitid     string
}

type transactionPayload struct {
	Account      *string  `json:"account"`
	Contact      *string  `json:"contact,omitempty"`
	Description  *string  `json:"description"`
	Value        *float64 `json:"value"`
	Deadline     *string  `json:"deadline"`
	PaidIn       string   `json:"paid_in,omitempty"`
	CreatedAt    *string  `json:"created_at"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	Transfer     *string  `json:"transfer,omitzero"`
	Tags         []string `json:"tags,omitempty"`
	Observations string   `json:"observations,omitempty"`
	OfxMemo      string   `json:"ofx_memo,omitempty"`
	OfxFitid     string   `json:"ofx_fitid,omitempty"`
}

// Decode loads the row and the records it references. With depth above
// ShallowDepth the twin of a transfer is decoded too, one level shallower,
// and both values are linked to each other.
func (t *Transaction) Decode(row *storage.Row, st *storage.Storage, depth int) error {
	payload := &transactionPayload{}
	err := row.Unmarshal(payload)
	if err != nil {
		return err
	}

	switch {
	case payload.Description == nil:
		return row.Missing("description")
	case payload.Value == nil:
		return row.Missing("value")
	case payload.Deadline == nil:
		return row.Missing("deadline")
	case payload.Contact == nil && payload.Transfer == nil:
		// A transfer does not need a contact
		return row.Missing("contact")
	case payload.Account == nil:
		return row.Missing("account")
	case payload.CreatedAt == nil:
		return row.Missing("created_at")
	}

	*t = Transaction{
		Uuid:         row.Uuid,
		Description:  *payload.Description,
		Value:        fromFloat(*payload.Value),
		Observations: payload.Observations,
	}

	t.Account, err = GetAccount(st, *payload.Account)
	if err != nil {
		return row.Invalid("account", err)
	}

	if payload.Contact != nil && *payload.Contact != "" {
		t.Contact, err = GetContact(st, *payload.Contact)
		if err != nil {
			return row.Invalid("contact", err)
		}
	}

	t.Deadline, err = ParseDate(*payload.Deadline)
	if err != nil {
		return row.Invalid("deadline", err)
	}

	if payload.PaidIn != "" {
		t.PaidIn, err = ParseDate(payload.PaidIn)
		if err != nil {
			return row.Invalid("paid_in", err)
		}
	}

	t.CreatedAt, err = time.Parse(time.RFC3339, *payload.CreatedAt)
	if err != nil {
		return row.Invalid("created_at", err)
	}

	if payload.UpdatedAt != "" {
		t.UpdatedAt, err = time.Parse(time.RFC3339, payload.UpdatedAt)
		if err != nil {
			return row.Invalid("updated_at", err)
		}
	}

	if payload.Transfer != nil {
		t.TransferID = *payload.Transfer
	}

	t.Tags, err = resolveTags(st, payload.Tags)
	if err != nil {
		return row.Invalid("tags", err)
	}

	// Only a complete ofx reference is kept
	if payload.OfxMemo != "" && payload.OfxFitid != "" {
		t.OfxMemo = payload.OfxMemo
		t.OfxFitid = payload.OfxFitid
	}

	if depth > storage.ShallowDepth && t.TransferID != "" {
		return t.resolveTransfer(st, depth-1)
	}

	return nil
}

func (t *Transaction) resolveTransfer(st *storage.Storage, depth int) error {
	data := st.Section(SectionTransactions)

	found, err := data.FindByID(t.TransferID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: '%s' needed by '%s'", ErrBrokenTransfer, t.TransferID, t.Uuid)
	}

	twin := &Transaction{}
	err = data.NextDepth(twin, depth)
	if err != nil {
		return err
	}

	t.Transfer = twin
	twin.Transfer = t

	return nil
}

// Encode stamps created_at on the first save and updated_at on the following
// ones.
func (t *Transaction) Encode() (string, bool, interface{}, error) {
	if t.Account == nil {
		return "", false, nil, fmt.Errorf("%w: transaction without account", ErrIncomplete)
	}
	if t.Deadline.IsZero() {
		return "", false, nil, fmt.Errorf("%w: transaction without deadline", ErrIncomplete)
	}
	if t.Contact == nil && !t.IsTransfer() {
		return "", false, nil, fmt.Errorf("%w: contact or transfer must be present", ErrIncomplete)
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = now()
	}

	payload := &transactionPayload{
		Account:      ref(t.Account.Uuid),
		Description:  ref(t.Description),
		Value:        ref(toFloat(t.Value)),
		Deadline:     ref(FormatDate(t.Deadline)),
		PaidIn:       FormatDate(t.PaidIn),
		CreatedAt:    ref(t.CreatedAt.Format(time.RFC3339)),
		Tags:         tagIds(t.Tags),
		Observations: t.Observations,
	}

	if t.Uuid != "" {
		t.UpdatedAt = now()
		payload.UpdatedAt = t.UpdatedAt.Format(time.RFC3339)
	}

	if t.Contact != nil {
		payload.Contact = ref(t.Contact.Uuid)
	}

	if t.IsTransfer() {
		payload.Transfer = ref(t.TransferID)
	}

	if t.OfxMemo != "" && t.OfxFitid != "" {
		payload.OfxMemo = t.OfxMemo
		payload.OfxFitid = t.OfxFitid
	}

	return t.Uuid, t.Uuid == "", payload, nil
}

func (t *Transaction) Id() string {
	return storage.UuidToId(t.Uuid)
}

func (t *Transaction) IsTransfer() bool {
	return t.Transfer != nil || t.TransferID != ""
}

func (t *Transaction) IsPaid() bool {
	return !t.PaidIn.IsZero()
}

// Twin returns the other half of a transfer, loading it when it was not
// resolved at decode time.
func (t *Transaction) Twin(st *storage.Storage) (*Transaction, error) {
	if t.Transfer != nil {
		return t.Transfer, nil
	}
	if t.TransferID == "" {
		return nil, nil
	}

	err := t.resolveTransfer(st, storage.ShallowDepth)
	if err != nil {
		return nil, err
	}

	return t.Transfer, nil
}

func (t *Transaction) FormatValue() string {
	if t.Account == nil {
		return t.Value.StringFixed(2)
	}
	return t.Account.FormatValue(t.Value)
}

// Counterpart is the contact name, or the account at the other side of a
// transfer.
func (t *Transaction) Counterpart() string {
	if t.Transfer != nil && t.Transfer.Account != nil {
		return t.Transfer.Account.Name
	}
	if t.Contact != nil {
		return t.Contact.Name
	}
	return ""
}

func accountFilter(account *Account) map[string]interface{} {
	return map[string]interface{}{
		"account": map[string]interface{}{"$eq": account.Uuid},
	}
}

// GetTransactionsSimple returns every transaction of the account in file
// order, newest first.
func GetTransactionsSimple(st *storage.Storage, account *Account) ([]*Transaction, error) {
	return list[Transaction](st, SectionTransactions, accountFilter(account))
}

func GetTransaction(st *storage.Storage, id string) (*Transaction, error) {
	return find[Transaction](st, SectionTransactions, id, storage.LinkDepth)
}

// StoreTransaction saves a plain transaction. Transfers must go through
// StoreTransfer to keep both halves consistent.
func StoreTransaction(st *storage.Storage, t *Transaction) (string, error) {
	if t.IsTransfer() {
		return "", ErrUseStoreTransfer
	}

	id, err := save(st, SectionTransactions, t)
	if err != nil {
		return "", err
	}
	t.Uuid = id

	return id, nil
}

// RemoveTransaction deletes the transaction and, for transfers, its twin.
func RemoveTransaction(st *storage.Storage, id string) error {
	t, err := find[Transaction](st, SectionTransactions, id, storage.ShallowDepth)
	if err != nil {
		return err
	}

	if t.TransferID != "" {
		err = remove(st, SectionTransactions, t.TransferID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("remove transfer twin: %w", err)
		}
	}

	return remove(st, SectionTransactions, t.Uuid)
}

// Pay sets the paid date, a zero date marks the transaction as payable
// again. The twin of a transfer gets the same date.
func Pay(st *storage.Storage, t *Transaction, date time.Time) error {
	t.PaidIn = date

	if !t.IsTransfer() {
		_, err := StoreTransaction(st, t)
		return err
	}

	twin, err := t.Twin(st)
	if err != nil {
		return err
	}

	return StoreTransfer(st, t, twin)
}
