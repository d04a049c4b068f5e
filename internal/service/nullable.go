package service

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// Nullable tells an absent JSON field (Set false) from an explicit null
// (Set true, Value nil), so patches can clear optional fields.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Of returns a Nullable holding v.
func Of[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Value: &v} }

// Null returns a Nullable that clears the field.
func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := sonic.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// apply writes the patch into dst when the field was sent.
func (n Nullable[T]) apply(dst **T) {
	if n.Set {
		*dst = n.Value
	}
}
