package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTagMap(t *testing.T) {
	t.Run("repeated key keeps tag order", func(t *testing.T) {
		m := NewTagMap([][]string{{"t", "a"}, {"t", "b"}, {"t", "c"}})
		require.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, m.All("t"))
	})

	t.Run("single key still yields a sequence of tuples", func(t *testing.T) {
		m := NewTagMap([][]string{{"t", "solo"}})
		require.Equal(t, [][]string{{"solo"}}, m.All("t"))
		require.Equal(t, "solo", m.First("t"))
	})

	t.Run("value tuple excludes the key", func(t *testing.T) {
		m := NewTagMap([][]string{{"p", "pubkey1", "speaker", "wss://relay"}})
		require.Equal(t, [][]string{{"pubkey1", "speaker", "wss://relay"}}, m.All("p"))
		require.Equal(t, "pubkey1", m.First("p"))
	})

	t.Run("malformed tags are tolerated", func(t *testing.T) {
		m := NewTagMap([][]string{{}, {"d"}, {"title", "ok"}})
		require.Equal(t, "", m.First("d"))
		require.Equal(t, [][]string{{}}, m.All("d"))
		require.Equal(t, "ok", m.First("title"))
	})

	t.Run("absent key", func(t *testing.T) {
		m := NewTagMap(nil)
		require.Equal(t, "", m.First("title"))
		require.Nil(t, m.All("t"))
	})
}

func TestComputeID(t *testing.T) {
	r := Raw{
		PubKey:    "abc",
		CreatedAt: 1700000000,
		Kind:      KindTimeBasedEvent,
		Content:   "summary",
		Tags:      [][]string{{"title", "Meetup"}},
	}

	id := ComputeID(r)
	require.Len(t, id, 64)
	require.Equal(t, id, ComputeID(r))

	changed := r
	changed.Content = "other"
	require.NotEqual(t, id, ComputeID(changed))

	// The stored id never feeds back into the hash.
	withID := r
	withID.ID = id
	require.Equal(t, id, ComputeID(withID))
}
