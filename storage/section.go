package storage

import (
	"fmt"
	"strings"

	"github.com/SierraSoftworks/connor"
	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
)

// Data is a cursor bound to one section of the storage.
type Data struct {
	storage  *Storage
	section  string
	marker   int // line of the section marker, -1 when not located yet
	position int // last consumed line
}

func (d *Data) Name() string {
	return d.section
}

// findSection locates the section marker once per scan pass.
func (d *Data) findSection() error {
	err := d.storage.load()
	if err != nil {
		return err
	}

	if d.marker >= 0 && d.marker < len(d.storage.lines) && d.storage.lines[d.marker] == SectionPrefix+d.section {
		return nil
	}

	d.marker = d.storage.findMarker(d.section)
	if d.marker < 0 {
		return fmt.Errorf("'%s': %w", d.section, ErrSectionNotFound)
	}
	d.position = d.marker

	return nil
}

// invalidate forgets the marker, the lines may have moved.
func (d *Data) invalidate() {
	d.marker = -1
	d.position = -1
}

// Reset moves the cursor back to the top of the section.
func (d *Data) Reset() error {
	d.invalidate()
	return d.findSection()
}

// nextLine advances to the next data row of the section. Blank lines are
// skipped and any marker line ends the section.
func (d *Data) nextLine() (string, error) {
	err := d.findSection()
	if err != nil {
		return "", err
	}

	for {
		d.position++
		if d.position >= len(d.storage.lines) {
			return "", ErrNoMoreRows
		}

		line := d.storage.lines[d.position]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isMarker(line) {
			d.position--
			return "", ErrNoMoreRows
		}

		return line, nil
	}
}

func (d *Data) decode(line string, m Model, depth int) error {
	if !isDataLine(line) {
		return &MalformedRecordError{Section: d.section, Uuid: line}
	}

	row := &Row{
		Section: d.section,
		Uuid:    line[:UuidLength],
		Payload: []byte(line[UuidLength+1:]),
	}

	return m.Decode(row, d.storage, depth)
}

// Next decodes the next row into m, resolving its links one level deep.
func (d *Data) Next(m Model) error {
	return d.NextDepth(m, LinkDepth)
}

func (d *Data) NextDepth(m Model, depth int) error {
	line, err := d.nextLine()
	if err != nil {
		return err
	}

	return d.decode(line, m, depth)
}

// NextMatch decodes the next row whose payload matches the filter.
func (d *Data) NextMatch(filter map[string]interface{}, m Model) error {
	for {
		line, err := d.nextLine()
		if err != nil {
			return err
		}

		if len(filter) > 0 && isDataLine(line) {
			rowData := map[string]interface{}{}
			err := json.Unmarshal([]byte(line[UuidLength+1:]), &rowData)
			if err != nil {
				return &MalformedRecordError{Section: d.section, Uuid: line[:UuidLength], Err: err}
			}

			match, err := connor.Match(filter, rowData)
			if err != nil {
				return fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		return d.decode(line, m, LinkDepth)
	}
}

// FindByID positions the cursor so the following Next returns the row
// matching id. The scan never crosses into the next section.
func (d *Data) FindByID(id string) (bool, error) {
	err := d.Reset()
	if err != nil {
		return false, err
	}

	lines := d.storage.lines
	for i := d.marker + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, SectionPrefix) {
			return false, nil
		}
		if matchId(line, id) {
			d.position = i - 1
			return true, nil
		}
	}

	return false, nil
}

// FindByIndex looks value up in the secondary index. A miss returns false
// without scanning, a hit is verified against the section contents.
func (d *Data) FindByIndex(key, value string) (bool, error) {
	id, found := d.storage.index.Get(d.section, key, value)
	if !found {
		return false, nil
	}

	return d.FindByID(id)
}

// Save inserts m right after the section marker when it is new, otherwise
// replaces the row holding its uuid. It returns the full uuid of the row.
func (d *Data) Save(m Model) (string, error) {
	id, isNew, payload, err := m.Encode()
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	err = d.findSection()
	if err != nil {
		return "", err
	}

	lines := d.storage.lines
	if isNew {
		id = uuid.NewString()
		at := d.marker + 1

		lines = append(lines, "")
		copy(lines[at+1:], lines[at:])
		lines[at] = id + " " + string(encoded)
	} else {
		found := false
		for i, line := range lines {
			if matchId(line, id) {
				id = line[:UuidLength]
				lines[i] = id + " " + string(encoded)
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("save '%s' in section '%s': %w", id, d.section, ErrNotFound)
		}
	}

	d.storage.lines = lines
	d.invalidate()

	err = d.storage.rewrite()
	if err != nil {
		return "", err
	}

	return id, nil
}

// RemoveByID deletes the first row of the whole file matching id.
func (d *Data) RemoveByID(id string) error {
	err := d.storage.load()
	if err != nil {
		return err
	}

	lines := d.storage.lines
	for i, line := range lines {
		if !matchId(line, id) {
			continue
		}

		d.storage.index.Forget(line[:UuidLength])
		d.storage.lines = append(lines[:i], lines[i+1:]...)
		d.invalidate()

		return d.storage.rewrite()
	}

	return fmt.Errorf("remove '%s': %w", id, ErrNotFound)
}
