package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate references a record by kind, author and slot identifier.
// Unlike a record id it survives republication of the record.
type Coordinate struct {
	Kind      int
	AuthorKey string
	SlotID    string
}

func (c Coordinate) String() string {
	return FormatCoordinate(c.Kind, c.AuthorKey, c.SlotID)
}

// FormatCoordinate renders the colon-delimited "<kind>:<author>:<slot>"
// form.
func FormatCoordinate(kind int, authorKey, slotID string) string {
	return fmt.Sprintf("%d:%s:%s", kind, authorKey, slotID)
}

// ParseCoordinate splits a coordinate string. A coordinate with fewer
// than three colon-delimited fields is malformed and reported via the
// second return value, never as an error.
func ParseCoordinate(s string) (Coordinate, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return Coordinate{}, false
	}
	kind, _ := strconv.Atoi(parts[0])
	return Coordinate{Kind: kind, AuthorKey: parts[1], SlotID: parts[2]}, true
}

// SlotIDs derives the set of slot identifiers referenced by a list of
// coordinate strings. Malformed coordinates contribute nothing;
// duplicates are dropped, first appearance order is kept.
func SlotIDs(coordinates []string) []string {
	seen := make(map[string]struct{}, len(coordinates))
	ids := make([]string, 0, len(coordinates))
	for _, s := range coordinates {
		c, ok := ParseCoordinate(s)
		if !ok || c.SlotID == "" {
			continue
		}
		if _, dup := seen[c.SlotID]; dup {
			continue
		}
		seen[c.SlotID] = struct{}{}
		ids = append(ids, c.SlotID)
	}
	return ids
}
