package store

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	st, err := Open("settings.ini", Options{
		Fs:          fs,
		BaseDir:     "/",
		Environment: MapEnvironment{},
	})
	require.NoError(t, err)
	return st, fs
}

func itemKeys(t *testing.T, st *Store, section string) []string {
	t.Helper()
	items, err := st.GetItems(section)
	require.NoError(t, err)
	require.NotNil(t, items)
	return items.Keys()
}

func itemValue(t *testing.T, st *Store, section, key string) interface{} {
	t.Helper()
	items, err := st.GetItems(section)
	require.NoError(t, err)
	require.NotNil(t, items)
	v, ok := items.Get(key)
	require.True(t, ok, "key %q not in section %q", key, section)
	return v
}

func TestOpenSeedsDefaults(t *testing.T) {
	st, fs := newTestStore(t)

	assert.Equal(t, []string{"main"}, st.Sections())
	assert.Equal(t, []string{"reader"}, itemKeys(t, st, "main"))
	assert.Equal(t, "configstore", itemValue(t, st, "main", "reader"))

	// construction never touches disk
	exists, err := afero.Exists(fs, "/settings.ini")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOpenResolvesAbsolutePath(t *testing.T) {
	st, _ := newTestStore(t)
	assert.Equal(t, "/settings.ini", st.Filename())
}

func TestOpenMissingDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Open("/home/path/does/not/exist/settings.ini", Options{Fs: fs})

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
}

func TestOpenLoadsExistingContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/settings.ini",
		[]byte("[main]\nnewt = false\n"), 0o644))

	st, err := Open("/settings.ini", Options{Fs: fs, Environment: MapEnvironment{}})
	require.NoError(t, err)

	v, err := st.Get("newt")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	// seed merged without overwriting
	assert.Equal(t, "configstore", itemValue(t, st, "main", "reader"))
}

func TestOpenDoesNotOverwriteExistingSeedKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/settings.ini",
		[]byte("[main]\nreader = custom\n"), 0o644))

	st, err := Open("/settings.ini", Options{Fs: fs})
	require.NoError(t, err)
	assert.Equal(t, "custom", itemValue(t, st, "main", "reader"))
}

func TestOpenWithCustomDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	st, err := Open("/settings.ini", Options{
		Fs: fs,
		Defaults: map[string]map[string]string{
			"server": {"host": "localhost", "port": "8080"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost", itemValue(t, st, "server", "host"))
	assert.Equal(t, 8080, itemValue(t, st, "server", "port"))
}

func TestOpenRejectsReservedDefaultSection(t *testing.T) {
	_, err := Open("/settings.ini", Options{
		Fs:       afero.NewMemMapFs(),
		Defaults: map[string]map[string]string{"DEFAULT": {"a": "1"}},
	})

	var nameErr *SectionNameError
	require.ErrorAs(t, err, &nameErr)
}

func TestSetGetRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)

	tests := []struct {
		name      string
		value     interface{}
		evaluated interface{}
		raw       string
	}{
		{"int from string", "5", 5, "5"},
		{"int", 12, 12, "12"},
		{"float", "1.5", 1.5, "1.5"},
		{"bool python style", "True", true, "True"},
		{"bool", false, false, "false"},
		{"none", "None", nil, "None"},
		{"plain string", "hello world", "hello world", "hello world"},
		{"empty string", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, st.Set("value", tt.value))

			v, err := st.Get("value")
			require.NoError(t, err)
			assert.Equal(t, tt.evaluated, v)

			raw, err := st.Get("value", GetOptions{Raw: true})
			require.NoError(t, err)
			assert.Equal(t, tt.raw, raw)
		})
	}
}

func TestSetCreatesSection(t *testing.T) {
	st, _ := newTestStore(t)

	require.NoError(t, st.Set("sample", "Example", SetOptions{Section: "MainSection"}))
	require.NoError(t, st.Set("sample", "Example", SetOptions{Section: "OtherSection"}))

	assert.Equal(t, []string{"main", "MainSection", "OtherSection"}, st.Sections())
}

func TestSetRejectsReservedSection(t *testing.T) {
	st, _ := newTestStore(t)

	for _, section := range []string{"default", "deFault", "DEFAULT"} {
		err := st.Set("start", "True", SetOptions{Section: section})

		var nameErr *SectionNameError
		require.ErrorAs(t, err, &nameErr, "section %q", section)
	}
}

func TestGetMissingOption(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.Get("absent")

	var missing *MissingOptionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "absent", missing.Key)
	assert.Equal(t, "main", missing.Section)

	_, err = st.Get("anything", GetOptions{Section: "nosuch"})
	require.ErrorAs(t, err, &missing)
}

func TestGetDefault(t *testing.T) {
	st, _ := newTestStore(t)

	v, err := st.Get("members", GetOptions{Default: "10"})
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	// the default was stored
	v, err = st.Get("members")
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	v, err = st.Get("count", GetOptions{Section: "test", Default: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	// a default that is itself a null literal evaluates to nil
	v, err = st.Get("state", GetOptions{Default: "None"})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSetCommit(t *testing.T) {
	st, fs := newTestStore(t)

	require.NoError(t, st.Set("name", "first"))

	// uncommitted changes are invisible to a second store
	other, err := Open("/settings.ini", Options{Fs: fs})
	require.NoError(t, err)
	_, err = other.Get("name")
	var missing *MissingOptionError
	require.ErrorAs(t, err, &missing)

	require.NoError(t, st.Set("name", "last", SetOptions{Commit: true}))

	other, err = Open("/settings.ini", Options{Fs: fs})
	require.NoError(t, err)
	v, err := other.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "last", v)
}

func TestSetMany(t *testing.T) {
	st, fs := newTestStore(t)

	require.NoError(t, st.SetMany([]Entry{
		{Key: "name", Value: "one"},
		{Key: "number", Value: "2"},
	}))

	v, err := st.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "one", v)
	v, err = st.Get("number")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	// order preserved after the seed key
	assert.Equal(t, []string{"reader", "name", "number"}, itemKeys(t, st, "main"))

	// uncommitted, so reload drops them
	require.NoError(t, st.Reload())
	_, err = st.Get("number")
	var missing *MissingOptionError
	require.ErrorAs(t, err, &missing)

	require.NoError(t, st.SetMany([]Entry{
		{Key: "people", Value: "yes"},
		{Key: "count", Value: 30},
	}, SetOptions{Section: "demo", Commit: true}))

	other, err := Open("/settings.ini", Options{Fs: fs})
	require.NoError(t, err)
	assert.Equal(t, "yes", itemValue(t, other, "demo", "people"))
	assert.Equal(t, 30, itemValue(t, other, "demo", "count"))
}

func TestRemoveKey(t *testing.T) {
	st, _ := newTestStore(t)

	require.NoError(t, st.Set("sample", "Example", SetOptions{Section: "MainSection"}))
	require.NoError(t, st.Set("sample", "Example", SetOptions{Section: "OtherSection"}))
	require.NoError(t, st.RemoveKey("sample", RemoveOptions{Section: "MainSection"}))

	_, err := st.Get("sample", GetOptions{Section: "MainSection"})
	var missing *MissingOptionError
	require.ErrorAs(t, err, &missing)

	v, err := st.Get("sample", GetOptions{Section: "OtherSection"})
	require.NoError(t, err)
	assert.Equal(t, "Example", v)

	// removing an absent key is a no-op
	require.NoError(t, st.RemoveKey("nosuch"))
	require.NoError(t, st.RemoveKey("nosuch", RemoveOptions{Section: "ghost"}))
}

func TestRemoveSection(t *testing.T) {
	st, _ := newTestStore(t)

	require.NoError(t, st.Set("sample", "Example", SetOptions{Section: "MainSection"}))
	require.NoError(t, st.Set("sample", "Example", SetOptions{Section: "OtherSection"}))
	require.NoError(t, st.RemoveSection("main"))

	assert.Equal(t, []string{"MainSection", "OtherSection"}, st.Sections())

	items, err := st.GetItems("main")
	require.NoError(t, err)
	assert.Nil(t, items)

	// removing an absent section is a no-op
	require.NoError(t, st.RemoveSection("ghost"))
}

func TestGetItemsEvaluates(t *testing.T) {
	st, _ := newTestStore(t)

	require.NoError(t, st.Set("start", "True", SetOptions{Section: "defaults"}))
	require.NoError(t, st.Set("value", "45", SetOptions{Section: "defaults"}))

	assert.Equal(t, []string{"start", "value"}, itemKeys(t, st, "defaults"))
	assert.Equal(t, true, itemValue(t, st, "defaults", "start"))
	assert.Equal(t, 45, itemValue(t, st, "defaults", "value"))
}

func TestReload(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/settings.ini",
		[]byte("[main]\nreader = configstore\nmain = false\n"), 0o644))

	st, err := Open("/settings.ini", Options{Fs: fs})
	require.NoError(t, err)

	assert.Equal(t, []string{"reader", "main"}, itemKeys(t, st, "main"))

	require.NoError(t, st.Set("found", "True"))
	assert.Equal(t, []string{"reader", "main", "found"}, itemKeys(t, st, "main"))

	require.NoError(t, st.Reload())
	assert.Equal(t, []string{"reader", "main"}, itemKeys(t, st, "main"))
	assert.Equal(t, false, itemValue(t, st, "main", "main"))
}

func TestSaveWritesFile(t *testing.T) {
	st, fs := newTestStore(t)

	require.NoError(t, st.Save())

	exists, err := afero.Exists(fs, "/settings.ini")
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := afero.ReadFile(fs, "/settings.ini")
	require.NoError(t, err)
	assert.Contains(t, string(content), "[main]")
	assert.Contains(t, string(content), "reader")
}

func TestCaseSensitivity(t *testing.T) {
	t.Run("insensitive by default", func(t *testing.T) {
		st, _ := newTestStore(t)
		require.NoError(t, st.Set("NAME", "cup"))

		assert.Equal(t, []string{"reader", "name"}, itemKeys(t, st, "main"))
		v, err := st.Get("Name")
		require.NoError(t, err)
		assert.Equal(t, "cup", v)
	})

	t.Run("sensitive preserves case", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		st, err := Open("/settings.ini", Options{Fs: fs, CaseSensitive: true})
		require.NoError(t, err)

		require.NoError(t, st.Set("NAME", "cup"))
		require.NoError(t, st.Set("LEAGUE", "1"))

		assert.Equal(t, []string{"reader", "NAME", "LEAGUE"}, itemKeys(t, st, "main"))
		assert.Equal(t, "cup", itemValue(t, st, "main", "NAME"))
		assert.Equal(t, 1, itemValue(t, st, "main", "LEAGUE"))

		_, err = st.Get("name")
		var missing *MissingOptionError
		require.ErrorAs(t, err, &missing)
	})
}

func TestInterpolation(t *testing.T) {
	st, _ := newTestStore(t)

	require.NoError(t, st.Set("path", "drive"))
	require.NoError(t, st.Set("dir", "%(path)s-directory"))
	require.NoError(t, st.Set("suffix", "dir-%(dir)s"))

	v, err := st.Get("path")
	require.NoError(t, err)
	assert.Equal(t, "drive", v)

	v, err = st.Get("dir")
	require.NoError(t, err)
	assert.Equal(t, "drive-directory", v)

	v, err = st.Get("suffix")
	require.NoError(t, err)
	assert.Equal(t, "dir-drive-directory", v)
}

func TestInterpolationErrors(t *testing.T) {
	st, _ := newTestStore(t)

	var interpErr *InterpolationError

	// unresolved reference is a write-time error
	err := st.Set("dir", "%(missing)s-directory")
	require.ErrorAs(t, err, &interpErr)

	// malformed reference
	err = st.Set("attr", "%(num")
	require.ErrorAs(t, err, &interpErr)
}

func TestPercentEscaping(t *testing.T) {
	st, _ := newTestStore(t)

	// a bare percent is auto-escaped, not an error
	require.NoError(t, st.Set("number", "%23"))
	v, err := st.Get("number")
	require.NoError(t, err)
	assert.Equal(t, "%23", v)

	// pre-escaped percents survive the round trip
	require.NoError(t, st.Set("progress", "50%%"))
	v, err = st.Get("progress")
	require.NoError(t, err)
	assert.Equal(t, "50%", v)
}

func TestRoundTripThroughDisk(t *testing.T) {
	st, fs := newTestStore(t)

	require.NoError(t, st.Set("x", "1"))
	require.NoError(t, st.Set("y", "%(x)s-2"))
	require.NoError(t, st.Set("pct", "%100"))
	require.NoError(t, st.Set("flag", "True", SetOptions{Section: "opts"}))
	require.NoError(t, st.Save())

	other, err := Open("/settings.ini", Options{Fs: fs})
	require.NoError(t, err)

	v, err := other.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = other.Get("y")
	require.NoError(t, err)
	assert.Equal(t, "1-2", v)

	v, err = other.Get("pct")
	require.NoError(t, err)
	assert.Equal(t, "%100", v)

	v, err = other.Get("flag", GetOptions{Section: "opts"})
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestEnvironmentExpansion(t *testing.T) {
	fs := afero.NewMemMapFs()
	env := MapEnvironment{"HOME": "/home/guest", "SHELL": "/bin/sh"}
	st, err := Open("/settings.ini", Options{Fs: fs, Environment: env})
	require.NoError(t, err)

	require.NoError(t, st.Set("home", "$HOME"))
	v, err := st.Get("home")
	require.NoError(t, err)
	assert.Equal(t, "/home/guest", v)

	v, err = st.Get("shell", GetOptions{Default: "$SHELL"})
	require.NoError(t, err)
	assert.Equal(t, "/bin/sh", v)

	// unknown variables stay as written
	require.NoError(t, st.Set("missing", "$NOPE"))
	v, err = st.Get("missing")
	require.NoError(t, err)
	assert.Equal(t, "$NOPE", v)
}

func TestClose(t *testing.T) {
	st, fs := newTestStore(t)
	require.NoError(t, st.Set("name", "first"))
	require.NoError(t, st.Close(false))

	var closed *ClosedError
	_, err := st.Get("name")
	require.ErrorAs(t, err, &closed)
	require.ErrorAs(t, st.Set("a", "b"), &closed)
	require.ErrorAs(t, st.Save(), &closed)
	require.ErrorAs(t, st.Reload(), &closed)
	require.ErrorAs(t, st.Close(false), &closed)
	_, err = st.Search("x")
	require.ErrorAs(t, err, &closed)
	_, err = st.Snapshot()
	require.ErrorAs(t, err, &closed)

	// close without save left no file behind
	exists, err := afero.Exists(fs, "/settings.ini")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCloseWithSave(t *testing.T) {
	st, fs := newTestStore(t)
	require.NoError(t, st.Set("name", "first"))
	require.NoError(t, st.Close(true))

	other, err := Open("/settings.ini", Options{Fs: fs})
	require.NoError(t, err)
	v, err := other.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestOpenStream(t *testing.T) {
	fs := afero.NewMemMapFs()
	f, err := fs.OpenFile("/stream.ini", os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)

	st, err := OpenStream(f, Options{Fs: fs})
	require.NoError(t, err)
	assert.Equal(t, "/stream.ini", st.Filename())

	require.NoError(t, st.Set("name", "first"))

	// stream-backed stores serialize straight into the stream
	content, err := afero.ReadFile(fs, "/stream.ini")
	require.NoError(t, err)
	assert.Contains(t, string(content), "name")

	require.NoError(t, st.Close(false))
}

func TestOpenStreamReadOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/stream.ini", []byte("[main]\n"), 0o644))
	f, err := fs.OpenFile("/stream.ini", os.O_RDONLY, 0o644)
	require.NoError(t, err)

	_, err = OpenStream(f, Options{Fs: fs})

	var modeErr *ModeError
	require.ErrorAs(t, err, &modeErr)
}

func TestSetFilenameDetachesStream(t *testing.T) {
	fs := afero.NewMemMapFs()
	f, err := fs.OpenFile("/old.ini", os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)

	st, err := OpenStream(f, Options{Fs: fs})
	require.NoError(t, err)
	require.NoError(t, st.Set("name", "first"))

	require.NoError(t, st.SetFilename("/new.ini"))
	assert.Equal(t, "/new.ini", st.Filename())

	// nothing written until save
	exists, err := afero.Exists(fs, "/new.ini")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, st.Save())

	other, err := Open("/new.ini", Options{Fs: fs})
	require.NoError(t, err)
	v, err := other.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t,
		&MissingOptionError{Key: "k", Section: "s"},
		`option "k" not found in section "s"`)
	assert.EqualError(t,
		&ThresholdError{Threshold: 1.5},
		"threshold must be 0, 1 or any value between 0 and 1, got 1.5")
	assert.EqualError(t,
		&SectionNameError{Name: "DEFAULT"},
		`section name "DEFAULT" is reserved`)
	assert.EqualError(t,
		&ClosedError{Op: "get"},
		"get: store is closed")

	modeErr := &ModeError{Err: errors.New("bad handle")}
	assert.Contains(t, modeErr.Error(), "bad handle")
	assert.Equal(t, "bad handle", errors.Unwrap(modeErr).Error())
}
