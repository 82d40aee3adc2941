package reconciler

import "github.com/agentstation/eramap/pkg/eras"

// Index looks up scraped records by key. When a key occurs more than once
// the first record seen wins.
type Index struct {
	byKey map[eras.Key]eras.Record
	order []eras.Key
}

// NewIndex indexes records in order.
func NewIndex(records []eras.Record) *Index {
	idx := &Index{byKey: make(map[eras.Key]eras.Record, len(records))}
	for _, r := range records {
		key := r.Key()
		if _, seen := idx.byKey[key]; seen {
			continue
		}
		idx.byKey[key] = r
		idx.order = append(idx.order, key)
	}
	return idx
}

// Lookup returns the first record seen for key.
func (idx *Index) Lookup(key eras.Key) (eras.Record, bool) {
	r, ok := idx.byKey[key]
	return r, ok
}

// Keys returns the distinct keys in first-seen order.
func (idx *Index) Keys() []eras.Key {
	return append([]eras.Key(nil), idx.order...)
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.order)
}
