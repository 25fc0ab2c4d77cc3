package audit

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
)

// BucketName is where the events are stored.
const BucketName = "audit"

// Record is an event together with its position in the log.
type Record struct {
	Seq   uint64 `json:"seq"`
	Event Event  `json:"event"`
}

// Log is the append-only event log.
type Log struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewLog returns the log stored in the audit bucket.
func NewLog() Log {
	b := orm.NewModelBucket(BucketName)
	return Log{
		bucket: b,
		seq:    b.Sequence("seq"),
	}
}

// Append stores the event at the end of the log and returns its
// sequence number. Height is taken from the context when not set.
func (l Log) Append(ctx cattery.Context, db cattery.KVStore, e Event) (uint64, error) {
	if e.Height == 0 {
		e.Height, _ = cattery.GetHeight(ctx)
	}
	seq, err := l.seq.Next(db)
	if err != nil {
		return 0, errors.Wrap(err, "audit sequence")
	}
	if err := l.bucket.Put(db, orm.EncodeSequence(seq), &e); err != nil {
		return 0, err
	}
	return seq, nil
}

// Len returns the number of events ever appended.
func (l Log) Len(db cattery.ReadOnlyKVStore) (uint64, error) {
	return l.seq.Current(db)
}

// Range returns at most limit events, starting with the one at sequence
// from, in the order they were appended.
func (l Log) Range(db cattery.ReadOnlyKVStore, from uint64, limit int) ([]Record, error) {
	size, err := l.Len(db)
	if err != nil {
		return nil, err
	}
	var res []Record
	for seq := from; seq < size && len(res) < limit; seq++ {
		var e Event
		if err := l.bucket.One(db, orm.EncodeSequence(seq), &e); err != nil {
			return nil, errors.Wrapf(err, "event %d", seq)
		}
		res = append(res, Record{Seq: seq, Event: e})
	}
	return res, nil
}
