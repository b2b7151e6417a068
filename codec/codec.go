/*
Package codec provides the protobuf wire encoding used by every message,
model and transaction in barter.

Messages are encoded field by field with the varint and length delimited
primitives of gogo/protobuf, so any protobuf client can read them using the
field numbers documented on each type.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/errors"
)

const (
	wireVarint = 0
	wireBytes  = 2
)

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Encoder builds a protobuf encoded message. Zero values are omitted like
// proto3 does.
type Encoder struct {
	buf *proto.Buffer
	err error
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: proto.NewBuffer(nil)}
}

func (e *Encoder) key(field int, wire int) {
	if e.err == nil {
		e.err = e.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
	}
}

// Bytes writes a length delimited field.
func (e *Encoder) Bytes(field int, b []byte) *Encoder {
	if len(b) == 0 {
		return e
	}
	e.key(field, wireBytes)
	if e.err == nil {
		e.err = e.buf.EncodeRawBytes(b)
	}
	return e
}

// String writes a length delimited field.
func (e *Encoder) String(field int, s string) *Encoder {
	return e.Bytes(field, []byte(s))
}

// Uint64 writes a varint field.
func (e *Encoder) Uint64(field int, v uint64) *Encoder {
	if v == 0 {
		return e
	}
	e.key(field, wireVarint)
	if e.err == nil {
		e.err = e.buf.EncodeVarint(v)
	}
	return e
}

// Int64 writes a varint field using the int64 two's complement rule.
func (e *Encoder) Int64(field int, v int64) *Encoder {
	return e.Uint64(field, uint64(v))
}

// Bool writes a varint field.
func (e *Encoder) Bool(field int, v bool) *Encoder {
	if v {
		return e.Uint64(field, 1)
	}
	return e
}

// Message writes a nested message as a length delimited field.
func (e *Encoder) Message(field int, m Marshaller) *Encoder {
	if e.err != nil || m == nil {
		return e
	}
	raw, err := m.Marshal()
	if err != nil {
		e.err = err
		return e
	}
	return e.Bytes(field, raw)
}

// Result returns the encoded message or the first error that happened while
// encoding.
func (e *Encoder) Result() ([]byte, error) {
	if e.err != nil {
		return nil, errors.Wrap(e.err, "encode")
	}
	return e.buf.Bytes(), nil
}

// Field is a single decoded protobuf field.
type Field struct {
	Num  int
	wire int
	num  uint64
	raw  []byte
}

// Uint64 returns the value of a varint field.
func (f Field) Uint64() (uint64, error) {
	if f.wire != wireVarint {
		return 0, errors.Wrapf(errors.ErrInput, "field %d is not a varint", f.Num)
	}
	return f.num, nil
}

// Int64 returns the value of a varint field.
func (f Field) Int64() (int64, error) {
	v, err := f.Uint64()
	return int64(v), err
}

// Bool returns the value of a varint field.
func (f Field) Bool() (bool, error) {
	v, err := f.Uint64()
	return v != 0, err
}

// Bytes returns a copy of a length delimited field.
func (f Field) Bytes() ([]byte, error) {
	if f.wire != wireBytes {
		return nil, errors.Wrapf(errors.ErrInput, "field %d is not length delimited", f.Num)
	}
	return append([]byte(nil), f.raw...), nil
}

// String returns a length delimited field as a string.
func (f Field) String() (string, error) {
	b, err := f.Bytes()
	return string(b), err
}

// Decode walks all fields of an encoded message. Unknown fields must be
// ignored by fn so newer clients remain readable.
func Decode(data []byte, fn func(f Field) error) error {
	for len(data) > 0 {
		key, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrInput, "malformed field key")
		}
		data = data[n:]
		f := Field{Num: int(key >> 3), wire: int(key & 7)}
		switch f.wire {
		case wireVarint:
			if f.num, n = proto.DecodeVarint(data); n == 0 {
				return errors.Wrapf(errors.ErrInput, "field %d: malformed varint", f.Num)
			}
			data = data[n:]
		case wireBytes:
			size, n := proto.DecodeVarint(data)
			if n == 0 || uint64(len(data)-n) < size {
				return errors.Wrapf(errors.ErrInput, "field %d: malformed length", f.Num)
			}
			f.raw = data[n : n+int(size)]
			data = data[n+int(size):]
		default:
			return errors.Wrapf(errors.ErrInput, "field %d: unsupported wire type %d", f.Num, f.wire)
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
