package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	slots, err := Sequence([]string{"c", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []Slot{{"c", 0}, {"a", 1}, {"b", 2}}, slots)

	slots, err = Sequence(nil)
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = Sequence([]string{"a", "b", "a"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = Sequence([]string{"a", ""})
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestMove_LastToFirst(t *testing.T) {
	ids := []string{"t1", "t2", "t3"}

	moved, err := Move(ids, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t1", "t2"}, moved)
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids, "input must not be mutated")

	slots, err := Sequence(moved)
	require.NoError(t, err)
	positions := make([]int, len(slots))
	for i, s := range slots {
		positions[i] = s.Position
	}
	assert.Equal(t, []int{0, 1, 2}, positions)
	assert.Equal(t, "t3", slots[0].ID)
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"first to last", 0, 3, []string{"b", "c", "d", "a"}},
		{"middle down", 1, 2, []string{"a", "c", "b", "d"}},
		{"middle up", 2, 1, []string{"a", "c", "b", "d"}},
		{"no-op", 1, 1, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Move([]string{"a", "b", "c", "d"}, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Move([]string{"a"}, 0, 1)
	assert.ErrorIs(t, err, ErrIndexOutRange)
	_, err = Move([]string{"a"}, -1, 0)
	assert.ErrorIs(t, err, ErrIndexOutRange)
}

func TestInsert(t *testing.T) {
	assert.Equal(t, []string{"x", "a", "b"}, Insert([]string{"a", "b"}, "x", 0))
	assert.Equal(t, []string{"a", "x", "b"}, Insert([]string{"a", "b"}, "x", 1))
	assert.Equal(t, []string{"a", "b", "x"}, Insert([]string{"a", "b"}, "x", 99))
	assert.Equal(t, []string{"x", "a", "b"}, Insert([]string{"a", "b"}, "x", -3))
	assert.Equal(t, []string{"x"}, Insert(nil, "x", 0))
	// Already present: it is moved, not duplicated.
	assert.Equal(t, []string{"b", "a", "c"}, Insert([]string{"a", "b", "c"}, "a", 1))
}
