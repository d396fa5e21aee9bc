package storage

import (
	"fmt"
	"os"
	"time"
)

func Environment(f func(filename string)) {
	filename := fmt.Sprintf("temp-%v", time.Now().UnixNano())
	defer os.Remove(filename)

	f(filename)
}

// item is the smallest possible Model, used across the package tests.
type item struct {
	Uuid string
	Name string
	Tags []string
}

type itemPayload struct {
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

func (i *item) Decode(row *Row, st *Storage, depth int) error {
	payload := &itemPayload{}
	err := row.Unmarshal(payload)
	if err != nil {
		return err
	}
	if payload.Name == "" {
		return row.Missing("name")
	}

	i.Uuid = row.Uuid
	i.Name = payload.Name
	i.Tags = payload.Tags
	return nil
}

func (i *item) Encode() (string, bool, interface{}, error) {
	return i.Uuid, i.Uuid == "", &itemPayload{Name: i.Name, Tags: i.Tags}, nil
}

func openItems(filename string) (*Storage, *Data) {
	st := NewStorage(filename, nil)
	st.StartSection("items")
	return st, st.Section("items")
}
