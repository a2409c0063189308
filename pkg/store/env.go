package store

import (
	"os"
	"sort"
	"strings"

	"github.com/omushpapa/configstore/pkg/logger"
)

// Environment is a string-keyed mapping of environment variables. The
// store never touches the process environment directly; it goes
// through this interface so tests can substitute a plain map.
type Environment interface {
	Set(key, value string)
	Lookup(key string) (string, bool)
	All() map[string]string
}

// OSEnvironment is the process environment
type OSEnvironment struct{}

func (OSEnvironment) Set(key, value string) {
	os.Setenv(key, value)
}

func (OSEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (OSEnvironment) All() map[string]string {
	environ := os.Environ()
	all := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			all[kv[:i]] = kv[i+1:]
		}
	}
	return all
}

// MapEnvironment is an in-memory Environment for tests and sandboxed
// exports
type MapEnvironment map[string]string

func (m MapEnvironment) Set(key, value string) {
	m[key] = value
}

func (m MapEnvironment) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapEnvironment) All() map[string]string {
	all := make(map[string]string, len(m))
	for k, v := range m {
		all[k] = v
	}
	return all
}

// expandEnv substitutes $VAR and ${VAR} occurrences from env.
// Unknown variables are left as they were written.
func expandEnv(value string, env Environment) string {
	if !strings.ContainsRune(value, '$') {
		return value
	}
	return os.Expand(value, func(name string) string {
		if v, ok := env.Lookup(name); ok {
			return v
		}
		return "$" + name
	})
}

// ToEnv flattens the store into the target environment, one
// SECTION_KEY entry per option (KEY only with NoPrepend), upper-cased.
// Values are exported in their interpolated string form.
func (s *Store) ToEnv(opts ...ToEnvOptions) error {
	if s.closed {
		return &ClosedError{Op: "to_env"}
	}
	o := firstOrZero(opts)
	env := o.Environment
	if env == nil {
		env = s.env
	}

	count := 0
	for _, section := range s.Sections() {
		items, err := s.rawItems(section)
		if err != nil {
			return err
		}
		for _, item := range items {
			key := strings.ToUpper(item.Key)
			if !o.NoPrepend {
				key = strings.ToUpper(section) + "_" + key
			}
			env.Set(key, item.Value)
			count++
		}
	}

	s.log.WithFields(logger.Fields{
		"entries": count,
		"prepend": !o.NoPrepend,
	}).Debug("Exported store to environment")

	return nil
}

// LoadEnv imports environment entries into the store. With a prefix,
// only keys starting with its upper-cased form are imported, prefix
// stripped, into a section named after the prefix; without one, every
// entry lands in the default section. Key names are lower-cased
// unless the store is case sensitive.
func (s *Store) LoadEnv(opts ...LoadEnvOptions) error {
	if s.closed {
		return &ClosedError{Op: "load_env"}
	}
	o := firstOrZero(opts)
	env := o.Environment
	if env == nil {
		env = s.env
	}

	section := DefaultSection
	prefix := ""
	if o.Prefix != "" {
		section = o.Prefix
		prefix = strings.ToUpper(o.Prefix)
	}
	if isReservedSection(section) {
		return &SectionNameError{Name: section}
	}

	all := env.All()
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	count := 0
	for _, k := range keys {
		name := k
		if prefix != "" {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			name = strings.TrimPrefix(strings.TrimPrefix(name, prefix), "_")
			if name == "" {
				continue
			}
		}
		if err := s.storeValue(section, s.foldKey(name), all[k], true); err != nil {
			return err
		}
		count++
	}

	if err := s.flush(); err != nil {
		return err
	}

	s.log.WithFields(logger.Fields{
		"entries": count,
		"prefix":  o.Prefix,
		"section": section,
	}).Debug("Imported environment into store")

	if o.Commit {
		return s.Save()
	}
	return nil
}
