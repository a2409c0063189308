package store

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/ini.v1"
)

const (
	showWidth    = 50
	showKeyWidth = 23
)

// sectionItems builds the ordered, evaluated view of one section
func (s *Store) sectionItems(section string, sec *ini.Section) (*orderedmap.OrderedMap, error) {
	items := orderedmap.New()
	for _, key := range sec.KeyStrings() {
		value, err := s.resolve(section, key, sec.Key(key).Value(), sec)
		if err != nil {
			return nil, err
		}
		items.Set(key, evaluate(value))
	}
	return items, nil
}

// rawItems lists a section's options with fully resolved string
// values, in insertion order
func (s *Store) rawItems(section string) ([]rawItem, error) {
	sec := s.section(section)
	if sec == nil {
		return nil, nil
	}
	items := make([]rawItem, 0, len(sec.Keys()))
	for _, key := range sec.KeyStrings() {
		value, err := s.resolve(section, key, sec.Key(key).Value(), sec)
		if err != nil {
			return nil, err
		}
		items = append(items, rawItem{Key: key, Value: value})
	}
	return items, nil
}

// Snapshot returns a nested ordered mapping of the whole store with
// values evaluated as in Get
func (s *Store) Snapshot() (*orderedmap.OrderedMap, error) {
	if s.closed {
		return nil, &ClosedError{Op: "snapshot"}
	}

	snapshot := orderedmap.New()
	for _, section := range s.Sections() {
		items, err := s.sectionItems(section, s.section(section))
		if err != nil {
			return nil, err
		}
		snapshot.Set(section, items)
	}
	return snapshot, nil
}

// Show writes a fixed-width section/option/value table of the whole
// store to w
func (s *Store) Show(w io.Writer) error {
	if s.closed {
		return &ClosedError{Op: "show"}
	}

	var b strings.Builder
	b.WriteString(center(filepath.Base(s.filename), showWidth, '-'))

	for _, section := range s.Sections() {
		b.WriteByte('\n')
		b.WriteString(center(section, showWidth, ' '))

		items, err := s.rawItems(section)
		if err != nil {
			return err
		}
		for _, item := range items {
			fmt.Fprintf(&b, "\n%*s: %v", showKeyWidth, item.Key, evaluate(item.Value))
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n\n")
	b.WriteString(center("end", showWidth, '-'))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// center pads s to width with fill on both sides
func center(s string, width int, fill byte) string {
	if len(s) >= width {
		return s
	}
	total := width - len(s)
	left := total / 2
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), total-left)
}
