package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapseEvents(t *testing.T) {
	t.Run("newest revision wins", func(t *testing.T) {
		events := []CalendarEvent{
			{ID: "old", AuthorKey: "a", SlotID: "s1", CreatedAt: 100, Title: "v1"},
			{ID: "other", AuthorKey: "a", SlotID: "s2", CreatedAt: 150},
			{ID: "new", AuthorKey: "a", SlotID: "s1", CreatedAt: 200, Title: "v2"},
		}
		kept := CollapseEvents(events)
		require.Len(t, kept, 2)
		require.Equal(t, "new", kept[0].ID)
		require.Equal(t, "other", kept[1].ID)
	})

	t.Run("same slot from different authors stays distinct", func(t *testing.T) {
		events := []CalendarEvent{
			{ID: "e1", AuthorKey: "a", SlotID: "s", CreatedAt: 100},
			{ID: "e2", AuthorKey: "b", SlotID: "s", CreatedAt: 100},
		}
		require.Len(t, CollapseEvents(events), 2)
	})

	t.Run("empty slot ids are never grouped", func(t *testing.T) {
		events := []CalendarEvent{
			{ID: "e1", AuthorKey: "a", CreatedAt: 100},
			{ID: "e2", AuthorKey: "a", CreatedAt: 200},
		}
		require.Len(t, CollapseEvents(events), 2)
	})

	t.Run("tie keeps first seen", func(t *testing.T) {
		events := []CalendarEvent{
			{ID: "first", AuthorKey: "a", SlotID: "s", CreatedAt: 100},
			{ID: "second", AuthorKey: "a", SlotID: "s", CreatedAt: 100},
		}
		kept := CollapseEvents(events)
		require.Len(t, kept, 1)
		require.Equal(t, "first", kept[0].ID)
	})
}

func TestCollapseCalendars(t *testing.T) {
	calendars := []CalendarList{
		{ID: "c1", AuthorKey: "a", SlotID: "s", CreatedAt: 100, Title: "v1"},
		{ID: "c2", AuthorKey: "a", SlotID: "s", CreatedAt: 300, Title: "v2"},
		{ID: "c3", AuthorKey: "b", SlotID: "x", CreatedAt: 50},
	}
	kept := CollapseCalendars(calendars)
	require.Len(t, kept, 2)
	require.Equal(t, "c2", kept[0].ID)
	require.Equal(t, "c3", kept[1].ID)
}
