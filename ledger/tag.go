package ledger

import (
	"errors"

	"github.com/fernandobatels/blitz-money/storage"
)

type Tag struct {
	Uuid string
	Name string
}

type tagPayload struct {
	Name *string `json:"name"`
}

func (t *Tag) Decode(row *storage.Row, st *storage.Storage, depth int) error {
	payload := &tagPayload{}
	err := row.Unmarshal(payload)
	if err != nil {
		return err
	}

	if payload.Name == nil {
		return row.Missing("name")
	}

	*t = Tag{
		Uuid: row.Uuid,
		Name: *payload.Name,
	}

	return nil
}

func (t *Tag) Encode() (string, bool, interface{}, error) {
	return t.Uuid, t.Uuid == "", &tagPayload{Name: ref(t.Name)}, nil
}

func (t *Tag) Id() string {
	return storage.UuidToId(t.Uuid)
}

func GetTags(st *storage.Storage) ([]*Tag, error) {
	return list[Tag](st, SectionTags, nil)
}

func GetTag(st *storage.Storage, id string) (*Tag, error) {
	return find[Tag](st, SectionTags, id, storage.ShallowDepth)
}

func StoreTag(st *storage.Storage, tag *Tag) (string, error) {
	id, err := save(st, SectionTags, tag)
	if err != nil {
		return "", err
	}
	tag.Uuid = id
	return id, nil
}

func RemoveTag(st *storage.Storage, id string) error {
	return remove(st, SectionTags, id)
}

// resolveTags loads the given tag ids, ids no longer stored are skipped.
func resolveTags(st *storage.Storage, ids []string) ([]Tag, error) {
	tags := []Tag{}
	for _, id := range ids {
		tag, err := GetTag(st, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func tagIds(tags []Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.Uuid)
	}
	return ids
}
