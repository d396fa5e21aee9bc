package storage

import (
	"os"
	"testing"

	. "github.com/fulldump/biff"
)

func TestStartSection(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := NewStorage(filename, nil)
		defer st.Close()

		// Run
		created, err := st.StartSection("accounts")
		AssertNil(err)
		AssertTrue(created)
		st.StartSection("contacts")
		st.StartSection("accounts")

		// Check
		content, _ := os.ReadFile(filename)
		AssertEqual(string(content), "::section::accounts\n\n::section::contacts\n")

		exists, err := st.CheckSection("contacts")
		AssertNil(err)
		AssertTrue(exists)

		exists, _ = st.CheckSection("tags")
		AssertFalse(exists)
	})
}

func TestStorage_ReloadsAfterStartSection(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		st := NewStorage(filename, nil)
		defer st.Close()
		st.StartSection("accounts")

		// Run
		os.WriteFile(filename, []byte("::section::accounts\n::metadata::lang pt_BR\n"), 0666)

		// Check
		value, found, err := st.Metadata("lang")
		AssertNil(err)
		AssertTrue(found)
		AssertEqual(value, "pt_BR")
	})
}

func TestStorage_Metadata(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		os.WriteFile(filename, []byte("::section::accounts\n\n::metadata::lang pt_BR\n::metadata::owner John Doe\n"), 0666)
		st := NewStorage(filename, nil)
		defer st.Close()

		// Run
		owner, found, err := st.Metadata("owner")

		// Check
		AssertNil(err)
		AssertTrue(found)
		AssertEqual(owner, "John Doe")

		_, found, _ = st.Metadata("currency")
		AssertFalse(found)
	})
}

func TestStorage_OpenError(t *testing.T) {

	st := NewStorage("this/path/does/not/exist/file.bms", nil)

	_, err := st.StartSection("accounts")

	AssertNotNil(err)
}

func TestStorage_CRLF(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		os.WriteFile(filename, []byte("::section::items\r\nfa1c3b20-2b0f-4dc2-9fb3-3f8d7a1c9e55 {\"name\":\"a\"}\r\n"), 0666)
		st := NewStorage(filename, nil)
		defer st.Close()

		// Run
		i := &item{}
		err := st.Section("items").Next(i)

		// Check
		AssertNil(err)
		AssertEqual(i.Name, "a")
	})
}
