package orm

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both as an integer as well as bytes.Compare() on the encoded value.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// Key returns the database key the counter is stored under.
func (s Sequence) Key() []byte {
	return s.id
}

// Current returns the value the next call to Next will hand out. It
// does not modify the sequence state.
func (s Sequence) Current(db cattery.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw)
}

// Next returns the current value of the sequence and advances it by one.
// The first value is zero. When the counter cannot be advanced any more
// ErrOverflow is returned and the state is left untouched.
func (s Sequence) Next(db cattery.KVStore) (uint64, error) {
	val, err := s.Current(db)
	if err != nil {
		return 0, err
	}
	if val == math.MaxUint64 {
		return 0, errors.Wrapf(errors.ErrOverflow, "sequence %s", s.id)
	}
	if err := db.Set(s.id, EncodeSequence(val+1)); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

// Set overwrites the state of the sequence. The next call to Next returns
// val.
func (s Sequence) Set(db cattery.KVStore, val uint64) error {
	if err := db.Set(s.id, EncodeSequence(val)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// DecodeSequence reads a stored counter value. Missing value is zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrState, "sequence value of %d bytes", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence returns the 8 byte big endian representation of val,
// so that byte order of encoded values follows their numeric order.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
