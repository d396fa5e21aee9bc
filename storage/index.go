package storage

import (
	"github.com/google/btree"
)

// IndexEntry maps the value of a field inside a section to the uuid of the
// row holding it.
type IndexEntry struct {
	Section string
	Key     string
	Value   string
	Uuid    string
}

// Index is an in-memory secondary index. It is never persisted: the caller
// builds it on every run with an explicit indexing pass.
type Index struct {
	Btree *btree.BTreeG[*IndexEntry]
}

func NewIndex() *Index {
	return &Index{
		Btree: btree.NewG(32, func(a, b *IndexEntry) bool {
			if a.Section != b.Section {
				return a.Section < b.Section
			}
			if a.Key != b.Key {
				return a.Key < b.Key
			}
			return a.Value < b.Value
		}),
	}
}

func (i *Index) Set(section, key, value, uuid string) {
	i.Btree.ReplaceOrInsert(&IndexEntry{
		Section: section,
		Key:     key,
		Value:   value,
		Uuid:    uuid,
	})
}

func (i *Index) Get(section, key, value string) (string, bool) {
	entry, found := i.Btree.Get(&IndexEntry{
		Section: section,
		Key:     key,
		Value:   value,
	})
	if !found {
		return "", false
	}
	return entry.Uuid, true
}

// Forget drops every entry pointing to uuid.
func (i *Index) Forget(uuid string) int {
	stale := []*IndexEntry{}
	i.Btree.Ascend(func(entry *IndexEntry) bool {
		if entry.Uuid == uuid {
			stale = append(stale, entry)
		}
		return true
	})

	for _, entry := range stale {
		i.Btree.Delete(entry)
	}

	return len(stale)
}

func (i *Index) Len() int {
	return i.Btree.Len()
}
