package store

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/afero"

	"github.com/omushpapa/configstore/pkg/logger"
)

const defaultSectionMarker = "@"

// ToJSON serializes the Snapshot view with 4-space indentation. With
// a nil writer the document is returned as a string; otherwise it is
// written to w and the returned string is empty.
func (s *Store) ToJSON(w io.Writer) (string, error) {
	if s.closed {
		return "", &ClosedError{Op: "to_json"}
	}

	snapshot, err := s.Snapshot()
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(snapshot, "", "    ")
	if err != nil {
		return "", err
	}

	if w == nil {
		return string(data), nil
	}
	_, err = w.Write(data)
	return "", err
}

// LoadJSON imports a JSON document. Top-level keys prefixed with the
// marker become sections whose object values become that section's
// options; unprefixed keys land in LoadJSONOptions.Section. Nested
// values are stored as their compact JSON text. Key order in the
// document is preserved.
func (s *Store) LoadJSON(filename string, opts ...LoadJSONOptions) error {
	if s.closed {
		return &ClosedError{Op: "load_json"}
	}
	o := firstOrZero(opts)
	section := o.Section
	if section == "" {
		section = DefaultSection
	}
	marker := o.Marker
	if marker == "" {
		marker = defaultSectionMarker
	}

	data, err := afero.ReadFile(s.fs, filename)
	if err != nil {
		return err
	}
	if o.Encoding != nil {
		if data, err = o.Encoding.NewDecoder().Bytes(data); err != nil {
			return err
		}
	}

	doc := orderedmap.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return err
	}

	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		if !strings.HasPrefix(key, marker) {
			if err := s.storeValue(section, s.foldKey(key), jsonValueString(value), true); err != nil {
				return err
			}
			continue
		}

		name := strings.TrimPrefix(key, marker)
		if name == "" {
			continue
		}
		nested, ok := value.(orderedmap.OrderedMap)
		if !ok {
			// a marker key with a scalar value is stored as-is
			if err := s.storeValue(section, s.foldKey(name), jsonValueString(value), true); err != nil {
				return err
			}
			continue
		}
		for _, nestedKey := range nested.Keys() {
			nestedValue, _ := nested.Get(nestedKey)
			if err := s.storeValue(name, s.foldKey(nestedKey), jsonValueString(nestedValue), true); err != nil {
				return err
			}
		}
	}

	if err := s.flush(); err != nil {
		return err
	}

	s.log.WithFields(logger.Fields{
		"filename": filename,
		"section":  section,
	}).Debug("Imported JSON document")

	return nil
}
