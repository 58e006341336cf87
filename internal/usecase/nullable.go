package usecase

import (
	"bytes"
	"encoding/json"
)

// NullableField is a partial-update field that tells an absent JSON key apart
// from an explicit null. An absent key leaves the column untouched; null
// clears it.
type NullableField[T any] struct {
	Set   bool
	Value *T
}

// SetTo returns a field carrying v.
func SetTo[T any](v T) NullableField[T] {
	return NullableField[T]{Set: true, Value: &v}
}

// Null returns a field that clears the column.
func Null[T any]() NullableField[T] {
	return NullableField[T]{Set: true}
}

// UnmarshalJSON records that the key was present before decoding the value, so
// the zero NullableField still means "leave untouched".
func (f *NullableField[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Value = nil

		return nil
	}

	return json.Unmarshal(data, &f.Value)
}
