package storage

import (
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"
)

var (
	ErrNotFound        = errors.New("row not found")
	ErrNoMoreRows      = errors.New("no more rows")
	ErrSectionNotFound = errors.New("section not found")
)

// Depth values accepted by Model.Decode. A record decoded with LinkDepth may
// load the records it links to, which are in turn decoded with ShallowDepth.
const (
	ShallowDepth = 0
	LinkDepth    = 1
)

// Model is implemented by every record kept in a section. Decode may issue
// further reads on the storage to resolve the ids the payload references.
type Model interface {
	Decode(row *Row, st *Storage, depth int) error
	Encode() (uuid string, isNew bool, payload interface{}, err error)
}

// Row is one data line: a 36 char uuid, a space and a json object.
type Row struct {
	Section string
	Uuid    string
	Payload []byte
}

func (r *Row) Unmarshal(v interface{}) error {
	err := json.Unmarshal(r.Payload, v)
	if err != nil {
		return &MalformedRecordError{Section: r.Section, Uuid: r.Uuid, Err: err}
	}
	return nil
}

// Missing reports a required field absent from the payload.
func (r *Row) Missing(field string) error {
	return &MalformedRecordError{Section: r.Section, Uuid: r.Uuid, Field: field}
}

// Invalid reports a field present in the payload that could not be parsed.
func (r *Row) Invalid(field string, err error) error {
	return &MalformedRecordError{Section: r.Section, Uuid: r.Uuid, Field: field, Err: err}
}

type MalformedRecordError struct {
	Section string
	Uuid    string
	Field   string
	Err     error
}

func (e *MalformedRecordError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("malformed row %s in section '%s': field '%s': %s", e.Uuid, e.Section, e.Field, e.Err.Error())
	case e.Field != "":
		return fmt.Sprintf("malformed row %s in section '%s': field '%s' not found", e.Uuid, e.Section, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("malformed row %s in section '%s': %s", e.Uuid, e.Section, e.Err.Error())
	}
	return fmt.Sprintf("malformed row %s in section '%s'", e.Uuid, e.Section)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
