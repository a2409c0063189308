package store

import (
	"strings"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Set("states", "35", SetOptions{Section: "country"}))
	require.NoError(t, st.Set("counties", "None", SetOptions{Section: "country"}))

	snapshot, err := st.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, []string{"main", "country"}, snapshot.Keys())

	country, ok := snapshot.Get("country")
	require.True(t, ok)
	items := country.(*orderedmap.OrderedMap)
	assert.Equal(t, []string{"states", "counties"}, items.Keys())

	states, _ := items.Get("states")
	assert.Equal(t, 35, states)
	counties, _ := items.Get("counties")
	assert.Nil(t, counties)
}

func TestShow(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Set("states", "35", SetOptions{Section: "country"}))

	var b strings.Builder
	require.NoError(t, st.Show(&b))
	out := b.String()

	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)

	// filename banner is centered and dash-filled to a fixed width
	assert.Len(t, lines[0], showWidth)
	assert.Contains(t, lines[0], "settings.ini")
	assert.True(t, strings.HasPrefix(lines[0], "-"))

	assert.Contains(t, out, "main")
	assert.Contains(t, out, "country")
	assert.Contains(t, out, "reader: configstore")
	assert.Contains(t, out, "states: 35")
	assert.Contains(t, out, "end")
}

func TestShowClosed(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Close(false))

	var b strings.Builder
	err := st.Show(&b)

	var closedErr *ClosedError
	require.ErrorAs(t, err, &closedErr)
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "--ab--", center("ab", 6, '-'))
	assert.Equal(t, "  a  ", center("a", 5, ' '))
	assert.Equal(t, "abcdef", center("abcdef", 4, '-'))
	assert.Equal(t, "-abc--", center("abc", 6, '-'))
}
