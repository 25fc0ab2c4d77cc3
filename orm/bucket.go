/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Keys inside of a bucket are chosen by the extension, usually
an encoded sequence value or an address.
* Sequences provide monotonic identifiers stored next to the data.
*/
package orm

import (
	"regexp"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is impelemented by any entity that can be stored using ModelBucket.
type Model interface {
	cattery.Persistent
	Validate() error
}

// ModelBucket is a prefixed subspace of the DB holding models of a
// single type.
type ModelBucket struct {
	name   string
	prefix []byte
}

// NewModelBucket creates a bucket to store data. Name must be 3 to 10
// lowercase characters, otherwise this function panics.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic(errors.Wrapf(errors.ErrHuman, "illegal bucket name: %q", name))
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of the bucket.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte(nil), b.prefix...), key...)
}

// One query the database for a single model instance. Lookup is done by
// the primary key. Result is loaded into given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (b ModelBucket) One(db cattery.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

// Has returns true if an entity with given primary key exists.
func (b ModelBucket) Has(db cattery.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Put saves given model in the database.
func (b ModelBucket) Put(db cattery.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db cattery.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%q bucket", b.name)
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Sequence returns a Sequence by name, stored next to this bucket.
func (b ModelBucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}
