package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"

	"github.com/omushpapa/configstore/pkg/logger"
)

// Store is a single authoritative in-memory view of an INI
// configuration, synchronized on demand with a backing file or
// stream. It is not safe for concurrent use; a backing target is
// exclusively owned by one Store.
type Store struct {
	fs  afero.Fs
	log logger.Logger
	env Environment

	parser   *ini.File
	filename string

	// stream is the caller-supplied target, nil for path-backed
	// stores. buf holds the serialized form when stream is nil.
	stream Stream
	buf    *bytes.Buffer

	defaults      map[string]map[string]string
	caseSensitive bool
	closed        bool
}

// rawItem is an option with its fully resolved string value
type rawItem struct {
	Key   string
	Value string
}

func firstOrZero[T any](opts []T) T {
	if len(opts) > 0 {
		return opts[0]
	}
	var zero T
	return zero
}

func isReservedSection(name string) bool {
	return strings.EqualFold(name, "default")
}

// iniLoadOptions keeps the parser a pure text codec: values are taken
// verbatim and interpolation stays the store's own pass.
var iniLoadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// Open creates a Store backed by the file at target. Relative paths
// resolve against Options.BaseDir, or the working directory. The
// parent directory must exist; the file itself need not. Existing
// content is loaded and merged over the default seed, and the result
// is serialized in memory without touching disk.
func Open(target string, opts ...Options) (*Store, error) {
	o := firstOrZero(opts)
	s, err := newStore(o)
	if err != nil {
		return nil, err
	}

	path := target
	if !filepath.IsAbs(path) {
		base := o.BaseDir
		if base == "" {
			if base, err = os.Getwd(); err != nil {
				return nil, err
			}
		}
		path = filepath.Join(base, filepath.Base(path))
	}
	if ok, err := afero.DirExists(s.fs, filepath.Dir(path)); err != nil || !ok {
		return nil, &PathError{Path: path}
	}
	s.filename = path
	s.buf = &bytes.Buffer{}

	if err := s.initialize(); err != nil {
		return nil, err
	}

	s.log.WithFields(logger.Fields{
		"filename":      s.filename,
		"caseSensitive": s.caseSensitive,
	}).Debug("Store opened")

	return s, nil
}

// OpenStream creates a Store backed by a caller-supplied stream. The
// stream is validated by use: the initial load reads it and the
// initial flush writes it back, and either failing reports a
// ModeError. The store owns the stream until Close or SetFilename.
func OpenStream(stream Stream, opts ...Options) (*Store, error) {
	o := firstOrZero(opts)
	s, err := newStore(o)
	if err != nil {
		return nil, err
	}
	s.stream = stream
	if named, ok := stream.(interface{ Name() string }); ok {
		s.filename = named.Name()
	}

	// The stream is validated by use: a read-only or write-only
	// stream fails one of these and reports a ModeError.
	content, err := s.readTarget()
	if err != nil {
		return nil, &ModeError{Err: err}
	}
	if err := s.parse(content); err != nil {
		return nil, err
	}
	if err := s.mergeDefaults(); err != nil {
		return nil, err
	}
	if err := s.flush(); err != nil {
		return nil, &ModeError{Err: err}
	}

	s.log.WithFields(logger.Fields{
		"filename": s.filename,
	}).Debug("Store opened on stream")

	return s, nil
}

func newStore(o Options) (*Store, error) {
	fs := o.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	env := o.Environment
	if env == nil {
		env = OSEnvironment{}
	}
	log := o.Logger
	if log == nil {
		log = logger.NewNop()
	}

	defaults := map[string]map[string]string{
		DefaultSection: {readerKey: readerName},
	}
	for section, items := range o.Defaults {
		if isReservedSection(section) {
			return nil, &SectionNameError{Name: section}
		}
		if defaults[section] == nil {
			defaults[section] = map[string]string{}
		}
		for k, v := range items {
			defaults[section][k] = v
		}
	}

	return &Store{
		fs:            fs,
		env:           env,
		log:           log,
		defaults:      defaults,
		caseSensitive: o.CaseSensitive,
	}, nil
}

// initialize loads existing target content, merges the default seed
// under it and serializes the merged store in memory
func (s *Store) initialize() error {
	if err := s.loadTarget(); err != nil {
		return err
	}
	if err := s.mergeDefaults(); err != nil {
		return err
	}
	return s.flush()
}

// loadTarget parses the current backing target content into a fresh
// parse tree. A missing file is an empty store, not an error.
func (s *Store) loadTarget() error {
	content, err := s.readTarget()
	if err != nil {
		return err
	}
	return s.parse(content)
}

// readTarget reads the current backing target content
func (s *Store) readTarget() ([]byte, error) {
	if s.stream != nil {
		if _, err := s.stream.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return io.ReadAll(s.stream)
	}

	exists, err := afero.Exists(s.fs, s.filename)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return afero.ReadFile(s.fs, s.filename)
}

func (s *Store) parse(content []byte) error {
	parsed, err := ini.LoadSources(iniLoadOptions, content)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", s.filename, err)
	}
	s.parser = parsed
	return nil
}

// mergeDefaults seeds default keys without overwriting loaded values
func (s *Store) mergeDefaults() error {
	sections := make([]string, 0, len(s.defaults))
	for section := range s.defaults {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	for _, section := range sections {
		keys := make([]string, 0, len(s.defaults[section]))
		for k := range s.defaults[section] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			key := s.foldKey(k)
			if sec := s.section(section); sec != nil && sec.HasKey(key) {
				continue
			}
			if err := s.storeValue(section, key, s.defaults[section][k], false); err != nil {
				return err
			}
		}
	}
	return nil
}

// section returns the named section or nil, never creating one
func (s *Store) section(name string) *ini.Section {
	sec, err := s.parser.GetSection(name)
	if err != nil {
		return nil
	}
	return sec
}

func (s *Store) foldKey(key string) string {
	if s.caseSensitive {
		return key
	}
	return strings.ToLower(key)
}

// sectionRawValues maps folded key names to raw stored values, for
// interpolation lookups
func (s *Store) sectionRawValues(sec *ini.Section) map[string]string {
	values := make(map[string]string, len(sec.Keys()))
	for _, k := range sec.Keys() {
		values[k.Name()] = k.Value()
	}
	return values
}

// resolve turns a raw stored value into its final string form:
// %(name)s references expanded, %% collapsed, $VAR substituted from
// the environment collaborator
func (s *Store) resolve(section, key, raw string, sec *ini.Section) (string, error) {
	expanded, err := expand(raw, s.sectionRawValues(sec), s.foldKey, 0)
	if err != nil {
		return "", &InterpolationError{Key: key, Section: section, Value: raw, Reason: err.Error()}
	}
	return expandEnv(unescapePercents(expanded), s.env), nil
}

// storeValue validates, sanitizes and stores one value without
// flushing. literal mode escapes every percent, for imported data
// that must never interpolate.
func (s *Store) storeValue(section, key, value string, literal bool) error {
	if isReservedSection(section) {
		return &SectionNameError{Name: section}
	}

	sanitized, refs, err := sanitizeValue(value, literal)
	if err != nil {
		return &InterpolationError{Key: key, Section: section, Value: value, Reason: err.Error()}
	}

	sec := s.section(section)
	for _, ref := range refs {
		name := s.foldKey(ref)
		if sec == nil || !sec.HasKey(name) {
			return &InterpolationError{
				Key: key, Section: section, Value: value,
				Reason: fmt.Sprintf("reference to undefined option %q", name),
			}
		}
	}

	if sec == nil {
		if sec, err = s.parser.NewSection(section); err != nil {
			return err
		}
	}
	sec.Key(key).SetValue(sanitized)
	return nil
}

// flush serializes the parse tree into the in-memory buffer, or the
// caller's stream for stream-backed stores
func (s *Store) flush() error {
	if s.stream != nil {
		if _, err := s.stream.Seek(0, io.SeekStart); err != nil {
			return err
		}
		n, err := s.parser.WriteTo(s.stream)
		if err != nil {
			return err
		}
		return s.stream.Truncate(n)
	}

	s.buf.Reset()
	_, err := s.parser.WriteTo(s.buf)
	return err
}

// readBack re-reads the serialized backing content into the parser so
// removals never act on stale state
func (s *Store) readBack() error {
	var content []byte
	if s.stream != nil {
		if _, err := s.stream.Seek(0, io.SeekStart); err != nil {
			return err
		}
		var err error
		if content, err = io.ReadAll(s.stream); err != nil {
			return err
		}
	} else {
		content = s.buf.Bytes()
	}

	parsed, err := ini.LoadSources(iniLoadOptions, content)
	if err != nil {
		return err
	}
	s.parser = parsed
	return nil
}

// Sections lists section names in insertion order
func (s *Store) Sections() []string {
	names := make([]string, 0, len(s.parser.Sections()))
	for _, name := range s.parser.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Filename returns the absolute path of the backing file
func (s *Store) Filename() string {
	return s.filename
}

// SetFilename re-targets the store to a new path. A stream-backed
// store detaches: the stream is closed and the store becomes
// path-backed, so the next Save writes the new file. Nothing is
// written until then.
func (s *Store) SetFilename(path string) error {
	if s.closed {
		return &ClosedError{Op: "set_filename"}
	}
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		path = filepath.Join(wd, filepath.Base(path))
	}

	if s.stream != nil {
		buf := &bytes.Buffer{}
		if _, err := s.parser.WriteTo(buf); err != nil {
			return err
		}
		if err := s.stream.Close(); err != nil {
			return err
		}
		s.stream = nil
		s.buf = buf
	}
	s.filename = path

	s.log.WithFields(logger.Fields{"filename": path}).Debug("Store re-targeted")
	return nil
}

// Get returns the value of key, evaluated to its native scalar type
// unless GetOptions.Raw is set. A missing key with a non-nil Default
// stores and returns the default; without one it returns a
// MissingOptionError.
func (s *Store) Get(key string, opts ...GetOptions) (interface{}, error) {
	if s.closed {
		return nil, &ClosedError{Op: "get"}
	}
	o := firstOrZero(opts)
	section := o.Section
	if section == "" {
		section = DefaultSection
	}
	key = s.foldKey(key)

	sec := s.section(section)
	if sec == nil || !sec.HasKey(key) {
		if o.Default == nil {
			return nil, &MissingOptionError{Key: key, Section: section}
		}
		if err := s.Set(key, o.Default, SetOptions{Section: section, Commit: o.Commit}); err != nil {
			return nil, err
		}
		sec = s.section(section)
	}

	k, err := sec.GetKey(key)
	if err != nil {
		return nil, &MissingOptionError{Key: key, Section: section}
	}
	value, err := s.resolve(section, key, k.Value(), sec)
	if err != nil {
		return nil, err
	}
	if o.Raw {
		return value, nil
	}
	return evaluate(value), nil
}

// Set stores value under key, creating the section if needed, and
// re-serializes the store in memory. With SetOptions.Commit the
// result is flushed to the backing file as well.
func (s *Store) Set(key string, value interface{}, opts ...SetOptions) error {
	if s.closed {
		return &ClosedError{Op: "set"}
	}
	o := firstOrZero(opts)
	section := o.Section
	if section == "" {
		section = DefaultSection
	}

	if err := s.storeValue(section, s.foldKey(key), stringify(value), false); err != nil {
		return err
	}
	if err := s.flush(); err != nil {
		return err
	}

	s.log.WithFields(logger.Fields{
		"key":     s.foldKey(key),
		"section": section,
		"commit":  o.Commit,
	}).Trace("Option set")

	if o.Commit {
		return s.Save()
	}
	return nil
}

// SetMany applies Set for every entry in order, serializing and
// optionally committing once at the end
func (s *Store) SetMany(entries []Entry, opts ...SetOptions) error {
	if s.closed {
		return &ClosedError{Op: "set_many"}
	}
	o := firstOrZero(opts)
	section := o.Section
	if section == "" {
		section = DefaultSection
	}

	for _, e := range entries {
		if err := s.storeValue(section, s.foldKey(e.Key), stringify(e.Value), false); err != nil {
			return err
		}
	}
	if err := s.flush(); err != nil {
		return err
	}
	if o.Commit {
		return s.Save()
	}
	return nil
}

// RemoveKey deletes an option. Removing an absent key or section is a
// no-op.
func (s *Store) RemoveKey(key string, opts ...RemoveOptions) error {
	if s.closed {
		return &ClosedError{Op: "remove_key"}
	}
	o := firstOrZero(opts)
	section := o.Section
	if section == "" {
		section = DefaultSection
	}

	if err := s.readBack(); err != nil {
		return err
	}
	if sec := s.section(section); sec != nil {
		sec.DeleteKey(s.foldKey(key))
	}
	if err := s.flush(); err != nil {
		return err
	}
	if o.Commit {
		return s.Save()
	}
	return nil
}

// RemoveSection deletes a whole section, leaving the others intact.
// Removing an absent section is a no-op; RemoveOptions.Section is
// ignored.
func (s *Store) RemoveSection(section string, opts ...RemoveOptions) error {
	if s.closed {
		return &ClosedError{Op: "remove_section"}
	}
	o := firstOrZero(opts)

	if err := s.readBack(); err != nil {
		return err
	}
	s.parser.DeleteSection(section)
	if err := s.flush(); err != nil {
		return err
	}
	if o.Commit {
		return s.Save()
	}
	return nil
}

// GetItems returns the ordered options of a section with values
// evaluated as in Get, or nil if the section does not exist
func (s *Store) GetItems(section string) (*orderedmap.OrderedMap, error) {
	if s.closed {
		return nil, &ClosedError{Op: "get_items"}
	}
	sec := s.section(section)
	if sec == nil {
		return nil, nil
	}
	return s.sectionItems(section, sec)
}

// Reload discards in-memory state, including uncommitted changes, and
// re-parses the current backing target content
func (s *Store) Reload() error {
	if s.closed {
		return &ClosedError{Op: "reload"}
	}

	s.log.WithFields(logger.Fields{"filename": s.filename}).Debug("Reloading store")

	if s.stream == nil {
		s.buf.Reset()
	}
	if err := s.loadTarget(); err != nil {
		return err
	}
	if err := s.mergeDefaults(); err != nil {
		return err
	}
	return s.flush()
}

// Save flushes the in-memory buffer content to the file on disk, or
// syncs the caller's stream for stream-backed stores
func (s *Store) Save() error {
	if s.closed {
		return &ClosedError{Op: "save"}
	}

	if s.stream != nil {
		if syncer, ok := s.stream.(interface{ Sync() error }); ok {
			return syncer.Sync()
		}
		return nil
	}

	s.log.WithFields(logger.Fields{
		"filename": s.filename,
		"bytes":    s.buf.Len(),
	}).Debug("Saving store to disk")

	return afero.WriteFile(s.fs, s.filename, s.buf.Bytes(), 0o644)
}

// Close releases the backing target, saving first when asked. Every
// operation on a closed store fails with a ClosedError.
func (s *Store) Close(save bool) error {
	if s.closed {
		return &ClosedError{Op: "close"}
	}
	if save {
		if err := s.Save(); err != nil {
			return err
		}
	}
	s.closed = true

	if s.stream != nil {
		err := s.stream.Close()
		s.stream = nil
		return err
	}
	return nil
}
