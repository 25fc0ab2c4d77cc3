package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/cattery/errors"
)

// Protobuf wire types used by the models.
const (
	WireVarint = 0
	WireBytes  = 2
)

// Writer builds the protobuf wire representation of a model, one field
// at a time. Fields must be written in ascending order to keep the
// encoding canonical.
type Writer struct {
	buf *proto.Buffer
	err error
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{buf: proto.NewBuffer(nil)}
}

func (w *Writer) tag(field, wire int) {
	if w.err == nil {
		w.err = w.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
	}
}

// Uint64 writes a varint field. Zero values are omitted.
func (w *Writer) Uint64(field int, v uint64) {
	if v == 0 {
		return
	}
	w.PresentUint64(field, v)
}

// PresentUint64 writes a varint field even if it holds zero. Use it for
// optional values where zero and absence differ.
func (w *Writer) PresentUint64(field int, v uint64) {
	w.tag(field, WireVarint)
	if w.err == nil {
		w.err = w.buf.EncodeVarint(v)
	}
}

// Bytes writes a length delimited field. Empty values are omitted.
func (w *Writer) Bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	w.tag(field, WireBytes)
	if w.err == nil {
		w.err = w.buf.EncodeRawBytes(b)
	}
}

// Message writes an embedded model as a length delimited field.
func (w *Writer) Message(field int, m Model) {
	if w.err != nil {
		return
	}
	raw, err := m.Marshal()
	if err != nil {
		w.err = err
		return
	}
	w.tag(field, WireBytes)
	if w.err == nil {
		w.err = w.buf.EncodeRawBytes(raw)
	}
}

// Result returns the encoded model or the first error encountered.
func (w *Writer) Result() ([]byte, error) {
	if w.err != nil {
		return nil, errors.Wrap(errors.ErrModel, w.err.Error())
	}
	return w.buf.Bytes(), nil
}

// Field is a single decoded protobuf field.
type Field struct {
	Number int
	wire   int
	varint uint64
	bytes  []byte
}

// Uint64 returns the value of a varint field.
func (f Field) Uint64() (uint64, error) {
	if f.wire != WireVarint {
		return 0, errors.Wrapf(errors.ErrModel, "field %d: wire type %d is not a varint", f.Number, f.wire)
	}
	return f.varint, nil
}

// Bytes returns the value of a length delimited field.
func (f Field) Bytes() ([]byte, error) {
	if f.wire != WireBytes {
		return nil, errors.Wrapf(errors.ErrModel, "field %d: wire type %d is not length delimited", f.Number, f.wire)
	}
	return f.bytes, nil
}

// DecodeFields walks all fields of an encoded model, calling visit for
// each of them in the order they were written. Unknown fields should be
// ignored by the visitor.
func DecodeFields(raw []byte, visit func(Field) error) error {
	for len(raw) > 0 {
		key, n := proto.DecodeVarint(raw)
		if n == 0 {
			return errors.Wrap(errors.ErrModel, "cannot decode field tag")
		}
		raw = raw[n:]

		f := Field{Number: int(key >> 3), wire: int(key & 7)}
		if f.Number == 0 {
			return errors.Wrap(errors.ErrModel, "field number zero")
		}
		switch f.wire {
		case WireVarint:
			v, n := proto.DecodeVarint(raw)
			if n == 0 {
				return errors.Wrapf(errors.ErrModel, "field %d: malformed varint", f.Number)
			}
			f.varint = v
			raw = raw[n:]
		case WireBytes:
			size, n := proto.DecodeVarint(raw)
			if n == 0 || size > uint64(len(raw)-n) {
				return errors.Wrapf(errors.ErrModel, "field %d: malformed length", f.Number)
			}
			end := n + int(size)
			f.bytes = append([]byte(nil), raw[n:end]...)
			raw = raw[end:]
		case 1, 5:
			size := 8
			if f.wire == 5 {
				size = 4
			}
			if len(raw) < size {
				return errors.Wrapf(errors.ErrModel, "field %d: truncated fixed value", f.Number)
			}
			raw = raw[size:]
		default:
			return errors.Wrapf(errors.ErrModel, "field %d: unsupported wire type %d", f.Number, f.wire)
		}
		if err := visit(f); err != nil {
			return err
		}
	}
	return nil
}
