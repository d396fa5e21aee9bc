package storage

import (
	"testing"

	. "github.com/fulldump/biff"
)

func TestUuidToId(t *testing.T) {
	AssertEqual(UuidToId("fa1c3b20-2b0f-4dc2-9fb3-3f8d7a1c9e55"), "fbd-ff5")
	AssertEqual(UuidToId("short"), "short")
}

func TestMatchId(t *testing.T) {
	line := `fa1c3b20-2b0f-4dc2-9fb3-3f8d7a1c9e55 {"name":"a"}`

	AssertTrue(matchId(line, "fa1c3b20-2b0f-4dc2-9fb3-3f8d7a1c9e55"))
	AssertTrue(matchId(line, "fa1c3b20"))
	AssertTrue(matchId(line, "fbd-ff5"))
	AssertFalse(matchId(line, "fa1c3b2")) // 7 chars are always a short id
	AssertFalse(matchId(line, ""))
	AssertFalse(matchId("::section::fa1c3b20", "::sect"))
	AssertFalse(matchId("", "fa1c"))
}

func TestMatchIdOfUuid(t *testing.T) {
	uuid := "fa1c3b20-2b0f-4dc2-9fb3-3f8d7a1c9e55"

	AssertTrue(MatchId(uuid, uuid))
	AssertTrue(MatchId(uuid, "fa1c"))
	AssertTrue(MatchId(uuid, "fbd-ff5"))
	AssertFalse(MatchId(uuid, "fa1c3b2"))
	AssertFalse(MatchId(uuid, ""))
	AssertFalse(MatchId(uuid, uuid+"0"))
}
