package store

import (
	"io"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"

	"github.com/omushpapa/configstore/pkg/logger"
)

const (
	// DefaultSection is the section used when an operation does not
	// name one
	DefaultSection = "main"

	// DefaultSearchThreshold is the fuzzy match threshold used when
	// SearchOptions.Threshold is zero
	DefaultSearchThreshold = 0.36

	// readerKey and readerName form the identity entry seeded into the
	// default section of every new store
	readerKey  = "reader"
	readerName = "configstore"
)

// Stream is a caller-supplied backing target. afero.File and *os.File
// both satisfy it; the stream must be open for reading and writing.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	Truncate(size int64) error
	Close() error
}

// Options configures a Store at construction. The zero value uses the
// OS filesystem, the process environment, the working directory as
// base for relative paths and a silent logger.
type Options struct {
	// Fs is the filesystem the store reads and writes through
	Fs afero.Fs

	// BaseDir resolves relative target paths. Empty means the current
	// working directory.
	BaseDir string

	// Defaults are seeded into the store at construction without
	// overwriting values loaded from the target
	Defaults map[string]map[string]string

	// CaseSensitive preserves option-name case. When false (the
	// default) option names are lower-cased on storage and lookup.
	CaseSensitive bool

	// Environment backs $VAR expansion and the ToEnv/LoadEnv defaults
	Environment Environment

	// Logger receives debug/trace output. Nil means no logging.
	Logger logger.Logger
}

// GetOptions carries the optional parameters of Get
type GetOptions struct {
	// Section to look in, DefaultSection when empty
	Section string

	// Raw skips literal evaluation and returns the stored string
	Raw bool

	// Default is stored and returned when the key is absent. Nil means
	// no default.
	Default interface{}

	// Commit writes the stored default to the backing file immediately
	Commit bool
}

// SetOptions carries the optional parameters of Set and SetMany
type SetOptions struct {
	Section string
	Commit  bool
}

// RemoveOptions carries the optional parameters of RemoveKey and
// RemoveSection. Section is ignored by RemoveSection.
type RemoveOptions struct {
	Section string
	Commit  bool
}

// SearchOptions carries the optional parameters of Search.
//
// A zero Threshold means DefaultSearchThreshold; a match-everything
// search should pass a small positive value instead.
type SearchOptions struct {
	IgnoreCase bool
	ExactMatch bool
	Threshold  float64
}

// ToEnvOptions carries the optional parameters of ToEnv
type ToEnvOptions struct {
	// Environment to export into, the store's own when nil
	Environment Environment

	// NoPrepend drops the SECTION_ prefix from exported keys
	NoPrepend bool
}

// LoadEnvOptions carries the optional parameters of LoadEnv
type LoadEnvOptions struct {
	// Environment to import from, the store's own when nil
	Environment Environment

	// Prefix selects only keys starting with its upper-cased form and
	// imports them, prefix stripped, into a section named after it
	Prefix string

	Commit bool
}

// LoadJSONOptions carries the optional parameters of LoadJSON
type LoadJSONOptions struct {
	// Section for unprefixed top-level keys, DefaultSection when empty
	Section string

	// Marker prefix turning a top-level key into a section, "@" when
	// empty
	Marker string

	// Encoding of the JSON document when it is not UTF-8, e.g.
	// unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	Encoding encoding.Encoding
}

// Entry is a single key/value pair for SetMany
type Entry struct {
	Key   string
	Value interface{}
}

// Match is a successful search result
type Match struct {
	Key     string
	Value   interface{}
	Section string
}
