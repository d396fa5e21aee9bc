package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fernandobatels/blitz-money/storage"
)

// Rule rewrites the description, contact and tags of transactions whose
// description contains Term.
type Rule struct {
	Uuid          string
	Term          string
	Description   string
	ExpectedValue *decimal.Decimal
	Contact       *Contact
	Tags          []Tag
}

type rulePayload struct {
	Term          *string  `json:"term"`
	Description   *string  `json:"description"`
	ExpectedValue *float64 `json:"expected_value,omitempty"`
	Contact       string   `json:"contact,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

func (r *Rule) Decode(row *storage.Row, st *storage.Storage, depth int) error {
	payload := &rulePayload{}
	err := row.Unmarshal(payload)
	if err != nil {
		return err
	}

	if payload.Term == nil {
		return row.Missing("term")
	}
	if payload.Description == nil {
		return row.Missing("description")
	}

	*r = Rule{
		Uuid:        row.Uuid,
		Term:        *payload.Term,
		Description: *payload.Description,
	}

	if payload.ExpectedValue != nil {
		r.ExpectedValue = ref(fromFloat(*payload.ExpectedValue))
	}

	if payload.Contact != "" {
		r.Contact, err = GetContact(st, payload.Contact)
		if err != nil {
			return row.Invalid("contact", err)
		}
	}

	r.Tags, err = resolveTags(st, payload.Tags)
	if err != nil {
		return row.Invalid("tags", err)
	}

	return nil
}

func (r *Rule) Encode() (string, bool, interface{}, error) {
	if r.Term == "" {
		return "", false, nil, fmt.Errorf("%w: rule without term", ErrIncomplete)
	}

	payload := &rulePayload{
		Term:        ref(r.Term),
		Description: ref(r.Description),
		Tags:        tagIds(r.Tags),
	}

	if r.ExpectedValue != nil {
		payload.ExpectedValue = ref(toFloat(*r.ExpectedValue))
	}

	if r.Contact != nil {
		payload.Contact = r.Contact.Uuid
	}

	return r.Uuid, r.Uuid == "", payload, nil
}

func (r *Rule) Id() string {
	return storage.UuidToId(r.Uuid)
}

// Match tells if the rule applies to the transaction.
func (r *Rule) Match(t *Transaction) bool {
	if !strings.Contains(strings.ToLower(t.Description), strings.ToLower(r.Term)) {
		return false
	}

	if r.ExpectedValue != nil && !r.ExpectedValue.Equal(t.Value) {
		return false
	}

	return true
}

func GetRules(st *storage.Storage) ([]*Rule, error) {
	return list[Rule](st, SectionRules, nil)
}

func GetRule(st *storage.Storage, id string) (*Rule, error) {
	return find[Rule](st, SectionRules, id, storage.ShallowDepth)
}

func StoreRule(st *storage.Storage, rule *Rule) (string, error) {
	id, err := save(st, SectionRules, rule)
	if err != nil {
		return "", err
	}
	rule.Uuid = id
	return id, nil
}

func RemoveRule(st *storage.Storage, id string) error {
	return remove(st, SectionRules, id)
}

// ApplyRules applies the first matching rule, newest first, to t.
func ApplyRules(st *storage.Storage, t *Transaction) (bool, error) {
	rules, err := GetRules(st)
	if err != nil {
		return false, err
	}

	for _, rule := range rules {
		if !rule.Match(t) {
			continue
		}

		t.Description = rule.Description
		t.Contact = rule.Contact
		t.Tags = append([]Tag{}, rule.Tags...)

		return true, nil
	}

	return false, nil
}
