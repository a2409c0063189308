// Package store implements an INI-backed configuration store with
// section namespacing, typed value evaluation, fuzzy search and
// JSON/environment round-tripping.
//
// A Store owns a single in-memory view of a flat, two-level
// (section -> option -> value) configuration. Mutations update the
// in-memory representation and its serialized buffer immediately;
// nothing reaches disk until Save is called or an operation is asked
// to commit.
//
// Basic usage:
//
//	st, err := store.Open("settings.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close(false)
//
//	st.Set("workers", 4)
//	st.Set("host", "localhost", store.SetOptions{Section: "server"})
//
//	v, err := st.Get("workers") // 4 (int)
//
//	st.Save()
//
// Values are stored as strings in standard INI text. On read they are
// evaluated back to int, float64, bool or nil unless GetOptions.Raw is
// set; strings that are not literals are returned unchanged. Values
// may reference sibling options with %(name)s and a literal percent
// is written as %%; both follow the classic INI interpolation
// convention, so files round-trip with other INI tooling.
//
// The filesystem is accessed through afero, and the process
// environment through the Environment interface, so both can be
// replaced in tests:
//
//	st, err := store.Open("settings.ini", store.Options{
//	    Fs:          afero.NewMemMapFs(),
//	    BaseDir:     "/",
//	    Environment: store.MapEnvironment{},
//	})
package store
