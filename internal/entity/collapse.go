package entity

// Records are append-only; "editing" publishes a new record under the
// same author-scoped slot id. Collapsing keeps only the newest record
// per (author, slot) so a view never shows stale revisions. Entities
// without a slot id cannot be grouped and are kept as-is, keyed by id.

func slotKey(authorKey, slotID, id string) string {
	if slotID == "" {
		return "id\x00" + id
	}
	return authorKey + "\x00" + slotID
}

// CollapseEvents keeps the highest-CreatedAt event per (author, slot).
// Order of first appearance is preserved; on a CreatedAt tie the
// earlier-seen record wins.
func CollapseEvents(events []CalendarEvent) []CalendarEvent {
	index := make(map[string]int, len(events))
	kept := make([]CalendarEvent, 0, len(events))
	for _, e := range events {
		key := slotKey(e.AuthorKey, e.SlotID, e.ID)
		i, ok := index[key]
		if !ok {
			index[key] = len(kept)
			kept = append(kept, e)
			continue
		}
		if e.CreatedAt > kept[i].CreatedAt {
			kept[i] = e
		}
	}
	return kept
}

// CollapseCalendars is CollapseEvents for calendar lists.
func CollapseCalendars(calendars []CalendarList) []CalendarList {
	index := make(map[string]int, len(calendars))
	kept := make([]CalendarList, 0, len(calendars))
	for _, c := range calendars {
		key := slotKey(c.AuthorKey, c.SlotID, c.ID)
		i, ok := index[key]
		if !ok {
			index[key] = len(kept)
			kept = append(kept, c)
			continue
		}
		if c.CreatedAt > kept[i].CreatedAt {
			kept[i] = c
		}
	}
	return kept
}
