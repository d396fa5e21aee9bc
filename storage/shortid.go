package storage

import "strings"

const (
	UuidLength    = 36
	ShortIdLength = 7
)

// UuidToId projects a uuid into the 7 char id shown to humans. It is lossy:
// two uuids sharing the sampled characters get the same short id.
func UuidToId(uuid string) string {
	if len(uuid) < UuidLength {
		return uuid
	}

	return string([]byte{uuid[0], uuid[10], uuid[15], '-', uuid[20], uuid[25], uuid[35]})
}

// MatchId tells if uuid is identified by id. A 7 char id is compared against
// the short id of uuid, anything else is a uuid prefix.
func MatchId(uuid, id string) bool {
	if id == "" {
		return false
	}

	if len(id) == ShortIdLength {
		return UuidToId(uuid) == id
	}

	return strings.HasPrefix(uuid, id)
}

// matchId tells if the data line belongs to the given id. The first matching
// line wins, short id collisions are not detected.
func matchId(line, id string) bool {
	if !isDataLine(line) {
		return false
	}

	return MatchId(line[:UuidLength], id)
}
