package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/coltab/errs"
	"github.com/arloliu/coltab/internal/hash"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(4)

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Names())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker(0)

	pos, err := tracker.Track("price")
	require.NoError(t, err)
	require.Equal(t, 0, pos)

	pos, err = tracker.Track("qty")
	require.NoError(t, err)
	require.Equal(t, 1, pos)

	require.Equal(t, []string{"price", "qty"}, tracker.Names())
	require.Equal(t, 2, tracker.Count())
}

func TestTracker_Track_EmptyName(t *testing.T) {
	tracker := NewTracker(1)

	_, err := tracker.Track("")
	require.ErrorIs(t, err, errs.ErrEmptyColumnName)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Track_Duplicate(t *testing.T) {
	tracker := NewTracker(2)

	_, err := tracker.Track("a")
	require.NoError(t, err)

	pos, err := tracker.Track("a")
	require.ErrorIs(t, err, errs.ErrDuplicateColumn)
	require.Contains(t, err.Error(), `"a"`)
	require.Equal(t, 0, pos)
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Lookup(t *testing.T) {
	tracker := NewTracker(3)
	for _, name := range []string{"x", "y", "z"} {
		_, err := tracker.Track(name)
		require.NoError(t, err)
	}

	pos, ok := tracker.Lookup("y")
	require.True(t, ok)
	require.Equal(t, 1, pos)

	_, ok = tracker.Lookup("missing")
	require.False(t, ok)
}

func TestTracker_Collision(t *testing.T) {
	tracker := NewTracker(2)
	_, err := tracker.Track("first")
	require.NoError(t, err)

	// simulate a hash collision: the bucket of "second" already points at "first"
	id := hash.ID("second")
	tracker.buckets[id] = append(tracker.buckets[id], 0)

	pos, err := tracker.Track("second")
	require.NoError(t, err, "a collision is not an error")
	require.Equal(t, 1, pos)
	require.True(t, tracker.HasCollision())

	pos, ok := tracker.Lookup("second")
	require.True(t, ok)
	require.Equal(t, 1, pos)

	pos, ok = tracker.Lookup("first")
	require.True(t, ok)
	require.Equal(t, 0, pos)
}

func TestTracker_TrackFirst(t *testing.T) {
	tracker := NewTracker(4)

	for i, name := range []string{"a", "a", "", "b"} {
		pos, err := tracker.TrackFirst(name)
		require.Equal(t, i, pos, "every name takes its own position")

		switch i {
		case 1:
			require.ErrorIs(t, err, errs.ErrDuplicateColumn)
		case 2:
			require.ErrorIs(t, err, errs.ErrEmptyColumnName)
		default:
			require.NoError(t, err)
		}
	}

	require.Equal(t, 4, tracker.Count())
	require.Equal(t, []string{"a", "a", "", "b"}, tracker.Names())

	pos, ok := tracker.Lookup("a")
	require.True(t, ok)
	require.Equal(t, 0, pos)

	pos, ok = tracker.Lookup("b")
	require.True(t, ok)
	require.Equal(t, 3, pos)

	_, ok = tracker.Lookup("")
	require.False(t, ok)
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker(2)
	_, err := tracker.Track("a")
	require.NoError(t, err)

	tracker.Reset()
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())

	_, ok := tracker.Lookup("a")
	require.False(t, ok)

	pos, err := tracker.Track("a")
	require.NoError(t, err)
	require.Equal(t, 0, pos)
}
