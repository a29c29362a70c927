package relay

import (
	"context"
	"errors"
	"sort"

	"github.com/okunev/nostrcal/internal/record"
)

var ErrDuplicateRecordID = errors.New("record with same ID exists")

// Filter is the query shape supported by relay stores. Zero-valued
// constraints are unset. Tags maps a single-letter tag key to the set
// of accepted first values.
type Filter struct {
	Kinds   []int
	Authors []string
	IDs     []string
	Since   int64
	Limit   int
	Tags    map[string][]string
}

// Client is the relay collaborator: a store of immutable records
// queried by filter. Fetch returns newest records first, capped by the
// filter limit.
type Client interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	Fetch(ctx context.Context, f Filter) ([]record.Raw, error)
	Publish(ctx context.Context, r record.Raw) error
}

// Match reports whether a record satisfies every set constraint of the
// filter. Limit is ignored here; it applies to the result set.
func (f Filter) Match(r record.Raw) bool {
	if len(f.Kinds) > 0 && !containsInt(f.Kinds, r.Kind) {
		return false
	}
	if len(f.Authors) > 0 && !containsString(f.Authors, r.PubKey) {
		return false
	}
	if len(f.IDs) > 0 && !containsString(f.IDs, r.ID) {
		return false
	}
	if f.Since > 0 && r.CreatedAt < f.Since {
		return false
	}
	for key, accepted := range f.Tags {
		if len(accepted) == 0 {
			continue
		}
		if !hasTagValue(r.Tags, key, accepted) {
			return false
		}
	}
	return true
}

// SortNewestFirst orders records by descending creation time, id as a
// tiebreak so results are stable.
func SortNewestFirst(records []record.Raw) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt > records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})
}

func hasTagValue(tags [][]string, key string, accepted []string) bool {
	for _, tag := range tags {
		if len(tag) < 2 || tag[0] != key {
			continue
		}
		if containsString(accepted, tag[1]) {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
