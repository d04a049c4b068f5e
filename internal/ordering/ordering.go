// Package ordering turns ordered id sequences into dense 0..n-1 positions.
//
// Lists (tasks in a column/section, columns of a board, sections of a project,
// the user's projects) are always renumbered as a whole, so positions stay dense
// after a reorder or an indexed insert.
package ordering

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyID       = errors.New("ordering: empty id")
	ErrDuplicateID   = errors.New("ordering: duplicate id")
	ErrIndexOutRange = errors.New("ordering: index out of range")
)

// Slot is the position assigned to one id.
type Slot struct {
	ID       string
	Position int
}

// Sequence assigns positions 0..n-1 to ids in the given order.
// Empty or repeated ids are rejected.
func Sequence(ids []string) ([]Slot, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]Slot, 0, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyID, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
		out = append(out, Slot{ID: id, Position: i})
	}
	return out, nil
}

// Move returns a copy of ids with the element at from moved to index to.
func Move(ids []string, from, to int) ([]string, error) {
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) {
		return nil, ErrIndexOutRange
	}
	out := make([]string, 0, len(ids))
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)

	moved := ids[from]
	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, nil
}

// Insert returns a copy of ids with id placed at index. Any existing occurrence
// of id is removed first; index is clamped to the list bounds.
func Insert(ids []string, id string, index int) []string {
	out := make([]string, 0, len(ids)+1)
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if index < 0 {
		index = 0
	}
	if index > len(out) {
		index = len(out)
	}
	out = append(out, "")
	copy(out[index+1:], out[index:])
	out[index] = id
	return out
}
