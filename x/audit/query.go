package audit

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
)

// QueryLimit is the most events returned by a single query.
const QueryLimit = 100

// RegisterQuery exposes the log as "/audit". The query data is the 8 byte
// big endian sequence to start from, empty to start from the beginning.
func RegisterQuery(qr cattery.QueryRouter) {
	log := NewLog()
	qr.Register("/audit", cattery.QueryHandlerFunc(func(db cattery.ReadOnlyKVStore, data []byte) (interface{}, error) {
		var from uint64
		if len(data) != 0 {
			if len(data) != 8 {
				return nil, errors.Wrap(errors.ErrInput, "start must be an 8 byte sequence")
			}
			var err error
			if from, err = orm.DecodeSequence(data); err != nil {
				return nil, err
			}
		}
		return log.Range(db, from, QueryLimit)
	}))
}
