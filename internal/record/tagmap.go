package record

// TagMap groups a record's tags by key. Every key maps to the ordered
// sequence of value-tuples seen for it, a tuple being the tag elements
// after the key. A key that appeared once still maps to a one-element
// sequence, so consumers never branch on multiplicity.
type TagMap map[string][][]string

// NewTagMap builds a TagMap from a raw tag list. Empty tags are
// skipped; a tag with only a key contributes an empty tuple. First
// appearance order is preserved within each key.
func NewTagMap(tags [][]string) TagMap {
	m := make(TagMap, len(tags))
	for _, tag := range tags {
		if len(tag) == 0 {
			continue
		}
		m[tag[0]] = append(m[tag[0]], tag[1:])
	}
	return m
}

// First returns the first value of the first tuple under key, or "" if
// the key is absent or its first tuple is empty.
func (m TagMap) First(key string) string {
	tuples := m[key]
	if len(tuples) == 0 || len(tuples[0]) == 0 {
		return ""
	}
	return tuples[0][0]
}

// All returns every value-tuple under key in tag order, nil if absent.
func (m TagMap) All(key string) [][]string {
	return m[key]
}
