package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	SectionPrefix  = "::section::"
	MetadataPrefix = "::metadata::"
)

// Storage keeps the whole bookkeeping file as an ordered list of lines. The
// only physical operations are loading the file and rewriting all of it.
// It is not safe for concurrent use.
type Storage struct {
	Path   string
	file   *os.File
	lines  []string
	index  *Index
	logger *slog.Logger
}

func NewStorage(path string, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Storage{
		Path:   path,
		lines:  []string{},
		index:  NewIndex(),
		logger: logger,
	}
}

// load opens the file and reads all its lines, unless it is already open.
func (s *Storage) load() error {
	if s.file != nil {
		return nil
	}

	f, err := os.OpenFile(s.Path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return fmt.Errorf("open file for read: %w", err)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("read file: %w", err)
	}

	s.file = f
	s.lines = splitLines(string(content))

	s.logger.Debug("storage loaded", "path", s.Path, "lines", len(s.lines))

	return nil
}

func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// rewrite truncates the file and writes every line back.
func (s *Storage) rewrite() error {
	err := s.load()
	if err != nil {
		return err
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	_, err = s.file.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seek file: %w", err)
	}

	content := ""
	if len(s.lines) > 0 {
		content = strings.Join(s.lines, "\n") + "\n"
	}

	_, err = s.file.WriteString(content)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	s.logger.Debug("storage rewritten", "path", s.Path, "lines", len(s.lines))

	return nil
}

// Close releases the file handle. The next operation loads the file again,
// picking up changes made by somebody else in the meantime.
func (s *Storage) Close() error {
	if s.file == nil {
		return nil
	}

	err := s.file.Close()
	s.file = nil
	return err
}

// CheckSection tells if the section marker exists.
func (s *Storage) CheckSection(name string) (bool, error) {
	err := s.load()
	if err != nil {
		return false, err
	}

	return s.findMarker(name) >= 0, nil
}

func (s *Storage) findMarker(name string) int {
	marker := SectionPrefix + name
	for i, line := range s.lines {
		if line == marker {
			return i
		}
	}
	return -1
}

// StartSection creates the section marker at the end of the file when it
// does not exist yet. Starting an existing section does nothing.
func (s *Storage) StartSection(name string) (bool, error) {
	exists, err := s.CheckSection(name)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	if len(s.lines) > 0 && strings.TrimSpace(s.lines[len(s.lines)-1]) != "" {
		s.lines = append(s.lines, "")
	}
	s.lines = append(s.lines, SectionPrefix+name)

	err = s.rewrite()
	if err != nil {
		return false, err
	}

	s.logger.Debug("section created", "section", name)

	// Force a reload on next access
	return true, s.Close()
}

// Section returns a cursor bound to the named section.
func (s *Storage) Section(name string) *Data {
	return &Data{
		storage:  s,
		section:  name,
		marker:   -1,
		position: -1,
	}
}

// Metadata returns the value of a `::metadata::<key> <value>` line.
func (s *Storage) Metadata(key string) (string, bool, error) {
	err := s.load()
	if err != nil {
		return "", false, err
	}

	prefix := MetadataPrefix + key + " "
	for _, line := range s.lines {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix), true, nil
		}
	}

	return "", false, nil
}

// SetIndex registers uuid as the row holding value for the field key of the
// section. A previous entry for the same triple is overwritten.
func (s *Storage) SetIndex(section, key, value, uuid string) {
	s.index.Set(section, key, value, uuid)
}

func (s *Storage) Index() *Index {
	return s.index
}

func isMarker(line string) bool {
	return strings.HasPrefix(line, SectionPrefix) || strings.HasPrefix(line, MetadataPrefix)
}

func isDataLine(line string) bool {
	return len(line) > UuidLength && line[UuidLength] == ' ' && !isMarker(line)
}
