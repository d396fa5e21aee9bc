package ledger

import (
	"github.com/fernandobatels/blitz-money/storage"
)

type Contact struct {
	Uuid         string
	Name         string
	CityLocation string
}

type contactPayload struct {
	Name         *string `json:"name"`
	CityLocation *string `json:"city_location"`
}

func (c *Contact) Decode(row *storage.Row, st *storage.Storage, depth int) error {
	payload := &contactPayload{}
	err := row.Unmarshal(payload)
	if err != nil {
		return err
	}

	if payload.Name == nil {
		return row.Missing("name")
	}
	if payload.CityLocation == nil {
		return row.Missing("city_location")
	}

	*c = Contact{
		Uuid:         row.Uuid,
		Name:         *payload.Name,
		CityLocation: *payload.CityLocation,
	}

	return nil
}

func (c *Contact) Encode() (string, bool, interface{}, error) {
	return c.Uuid, c.Uuid == "", &contactPayload{
		Name:         ref(c.Name),
		CityLocation: ref(c.CityLocation),
	}, nil
}

func (c *Contact) Id() string {
	return storage.UuidToId(c.Uuid)
}

func GetContacts(st *storage.Storage) ([]*Contact, error) {
	return list[Contact](st, SectionContacts, nil)
}

func GetContact(st *storage.Storage, id string) (*Contact, error) {
	return find[Contact](st, SectionContacts, id, storage.ShallowDepth)
}

func StoreContact(st *storage.Storage, contact *Contact) (string, error) {
	id, err := save(st, SectionContacts, contact)
	if err != nil {
		return "", err
	}
	contact.Uuid = id
	return id, nil
}

func RemoveContact(st *storage.Storage, id string) error {
	return remove(st, SectionContacts, id)
}
