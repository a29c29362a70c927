package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		input    string
		expected Coordinate
		ok       bool
	}{
		{input: "31923:abc123:myslot", expected: Coordinate{Kind: 31923, AuthorKey: "abc123", SlotID: "myslot"}, ok: true},
		{input: "31922:pk:slot-a", expected: Coordinate{Kind: 31922, AuthorKey: "pk", SlotID: "slot-a"}, ok: true},
		{input: "bad:coord", ok: false},
		{input: "", ok: false},
		{input: "31923:abc123", ok: false},
	}

	for _, tc := range tests {
		c, ok := ParseCoordinate(tc.input)
		require.Equal(t, tc.ok, ok, "input %q", tc.input)
		if tc.ok {
			require.Equal(t, tc.expected, c)
		}
	}
}

func TestSlotIDs(t *testing.T) {
	ids := SlotIDs([]string{
		"31923:abc123:myslot",
		"bad:coord",
		"31922:def:other",
		"31923:ghi:myslot", // duplicate slot
		"31923:jkl:",       // empty slot
	})
	require.Equal(t, []string{"myslot", "other"}, ids)

	require.Empty(t, SlotIDs(nil))
	require.Empty(t, SlotIDs([]string{"bad:coord"}))
}

func TestFormatCoordinate(t *testing.T) {
	require.Equal(t, "31923:abc123:myslot", FormatCoordinate(31923, "abc123", "myslot"))

	c, ok := ParseCoordinate(Coordinate{Kind: 31924, AuthorKey: "pk", SlotID: "s"}.String())
	require.True(t, ok)
	require.Equal(t, Coordinate{Kind: 31924, AuthorKey: "pk", SlotID: "s"}, c)
}
