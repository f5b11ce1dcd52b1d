// Package codec writes and reads the field-name-keyed JSON objects that plan
// nodes and expressions use on the wire. Objects keep their keys in insertion
// order so a reader sees base fields before the fields a variant adds.
package codec

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrMissingField is returned when a required key is absent from a payload.
	ErrMissingField = errors.New("missing required field")
	// ErrMalformed is returned when a payload or a field value cannot be decoded.
	ErrMalformed = errors.New("malformed payload")
)

// Object is an ordered JSON object under construction.
type Object struct {
	keys   []string
	values []json.RawMessage
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{}
}

// Set marshals v and appends it under key. A key set twice keeps its first
// position and takes the later value.
func (o *Object) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode field %s", key)
	}
	o.SetRaw(key, raw)
	return nil
}

// SetRaw appends an already encoded value under key.
func (o *Object) SetRaw(key string, raw json.RawMessage) {
	for i, k := range o.keys {
		if k == key {
			o.values[i] = raw
			return
		}
	}
	o.keys = append(o.keys, key)
	o.values = append(o.values, raw)
}

// Keys returns the keys in output order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(o.values[i])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Reader gives keyed access to a decoded JSON object. Keys the caller never
// asks for are ignored.
type Reader struct {
	fields map[string]json.RawMessage
}

// NewReader parses data, which must be a JSON object.
func NewReader(data []byte) (*Reader, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}
	if fields == nil {
		return nil, errors.Wrap(ErrMalformed, "expected a JSON object")
	}
	return &Reader{fields: fields}, nil
}

// Has reports whether key is present, including with a null value.
func (r *Reader) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// IsNull reports whether key is present with an explicit null.
func (r *Reader) IsNull(key string) bool {
	raw, ok := r.fields[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Raw returns the undecoded value of a required key.
func (r *Reader) Raw(key string) (json.RawMessage, error) {
	raw, ok := r.fields[key]
	if !ok {
		return nil, errors.Wrap(ErrMissingField, key)
	}
	return raw, nil
}

// Get decodes a required key into v.
func (r *Reader) Get(key string, v any) error {
	raw, err := r.Raw(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(ErrMalformed, "field %s: %v", key, err)
	}
	return nil
}

// Array returns the elements of a required array-valued key. A null value
// yields an empty slice.
func (r *Reader) Array(key string) ([]json.RawMessage, error) {
	var elems []json.RawMessage
	if err := r.Get(key, &elems); err != nil {
		return nil, err
	}
	return elems, nil
}

// Field binds a stable wire name to the functions that move one piece of a
// value's state in and out of an object.
type Field[T any] struct {
	Name   string
	Encode func(v T, o *Object) error
	Decode func(v T, r *Reader) error
}

// EncodeFields runs every field's encoder in table order.
func EncodeFields[T any](v T, o *Object, fields []Field[T]) error {
	for _, f := range fields {
		if err := f.Encode(v, o); err != nil {
			return errors.Wrapf(err, "encode %s", f.Name)
		}
	}
	return nil
}

// DecodeFields runs every field's decoder in table order and stops at the
// first failure.
func DecodeFields[T any](v T, r *Reader, fields []Field[T]) error {
	for _, f := range fields {
		if err := f.Decode(v, r); err != nil {
			return errors.Wrapf(err, "decode %s", f.Name)
		}
	}
	return nil
}
