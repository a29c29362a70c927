package memoryrelay_test

import (
	"context"
	"testing"

	"github.com/okunev/nostrcal/internal/record"
	"github.com/okunev/nostrcal/internal/relay"
	memoryrelay "github.com/okunev/nostrcal/internal/relay/memory"
	"github.com/stretchr/testify/require"
)

func storeWith(t *testing.T, records ...record.Raw) *memoryrelay.Store {
	t.Helper()
	s := memoryrelay.New()
	for _, r := range records {
		require.NoError(t, s.Publish(context.Background(), r))
	}
	return s
}

func TestPublishDuplicate(t *testing.T) {
	s := memoryrelay.New()
	r := record.Raw{ID: "r1", Kind: record.KindTimeBasedEvent}
	require.NoError(t, s.Publish(context.Background(), r))

	err := s.Publish(context.Background(), r)
	require.ErrorIs(t, err, relay.ErrDuplicateRecordID)
}

func TestFetchFilters(t *testing.T) {
	records := []record.Raw{
		{ID: "e1", PubKey: "alice", Kind: record.KindTimeBasedEvent, CreatedAt: 100, Tags: [][]string{{"d", "s1"}, {"t", "go"}}},
		{ID: "e2", PubKey: "bob", Kind: record.KindDateBasedEvent, CreatedAt: 200, Tags: [][]string{{"d", "s2"}}},
		{ID: "e3", PubKey: "alice", Kind: record.KindRSVP, CreatedAt: 300, Tags: [][]string{{"e", "e1"}}},
		{ID: "e4", PubKey: "carol", Kind: record.KindTimeBasedEvent, CreatedAt: 400, Tags: [][]string{{"d", "s3"}, {"t", "rust"}}},
	}
	s := storeWith(t, records...)
	ctx := context.Background()

	t.Run("by kind set", func(t *testing.T) {
		got, err := s.Fetch(ctx, relay.Filter{Kinds: record.EventKinds()})
		require.NoError(t, err)
		require.Len(t, got, 3)
	})

	t.Run("by author", func(t *testing.T) {
		got, err := s.Fetch(ctx, relay.Filter{Authors: []string{"alice"}})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("by id set", func(t *testing.T) {
		got, err := s.Fetch(ctx, relay.Filter{IDs: []string{"e1", "e4"}})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("by since", func(t *testing.T) {
		got, err := s.Fetch(ctx, relay.Filter{Since: 250})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("by tag membership", func(t *testing.T) {
		got, err := s.Fetch(ctx, relay.Filter{Tags: map[string][]string{"d": {"s1", "s3"}}})
		require.NoError(t, err)
		require.Len(t, got, 2)

		got, err = s.Fetch(ctx, relay.Filter{Tags: map[string][]string{"e": {"e1"}}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "e3", got[0].ID)
	})

	t.Run("constraints combine", func(t *testing.T) {
		got, err := s.Fetch(ctx, relay.Filter{Kinds: record.EventKinds(), Tags: map[string][]string{"t": {"go"}}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "e1", got[0].ID)
	})

	t.Run("newest first with limit", func(t *testing.T) {
		got, err := s.Fetch(ctx, relay.Filter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "e4", got[0].ID)
		require.Equal(t, "e3", got[1].ID)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := s.Fetch(ctx, relay.Filter{Authors: []string{"nobody"}})
		require.NoError(t, err)
		require.Empty(t, got)
	})
}
