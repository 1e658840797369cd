// Package collision indexes column names by their xxHash64 ID while keeping
// lookups exact when two names share a hash.
package collision

import (
	"fmt"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/internal/hash"
)

// Tracker maps column names to their position in table order.
//
// Names are bucketed by hash.ID. A bucket normally holds one position; a hash
// collision (different names, same hash) adds a second position to the bucket
// and is resolved by comparing names, so it is never an error.
type Tracker struct {
	buckets      map[uint64][]int // hash → positions in names
	names        []string         // names in the order they were tracked
	hasCollision bool
}

// NewTracker creates a tracker sized for capacity names.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		buckets: make(map[uint64][]int, capacity),
		names:   make([]string, 0, capacity),
	}
}

// Track records name at the next position and returns that position.
//
// Returns:
//   - int: position of name (equals the number of names tracked before it)
//   - error: ErrEmptyColumnName for "", ErrDuplicateColumn if name was already tracked
func (t *Tracker) Track(name string) (int, error) {
	if name == "" {
		return 0, errs.ErrEmptyColumnName
	}

	id := hash.ID(name)
	bucket := t.buckets[id]
	for _, pos := range bucket {
		if t.names[pos] == name {
			return pos, fmt.Errorf("%w: %q at positions %d and %d", errs.ErrDuplicateColumn, name, pos, len(t.names))
		}
	}

	if len(bucket) > 0 {
		t.hasCollision = true
	}

	pos := len(t.names)
	t.names = append(t.names, name)
	t.buckets[id] = append(bucket, pos)

	return pos, nil
}

// TrackFirst records name at the next position like Track, but takes the
// position even when name is empty or already tracked. Such a name is not
// indexed, so Lookup keeps returning the first position holding it.
//
// Returns:
//   - int: position of name
//   - error: the Track error explaining why name was not indexed, if any
func (t *Tracker) TrackFirst(name string) (int, error) {
	pos, err := t.Track(name)
	if err == nil {
		return pos, nil
	}

	pos = len(t.names)
	t.names = append(t.names, name)

	return pos, err
}

// Lookup returns the position of name.
func (t *Tracker) Lookup(name string) (int, bool) {
	for _, pos := range t.buckets[hash.ID(name)] {
		if t.names[pos] == name {
			return pos, true
		}
	}

	return 0, false
}

// HasCollision reports whether two tracked names share a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in order. The slice must not be modified.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked names so the tracker can be reused.
func (t *Tracker) Reset() {
	clear(t.buckets)
	t.names = t.names[:0]
	t.hasCollision = false
}
