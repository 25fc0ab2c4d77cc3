package kitties

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
)

// Bucket names used by this extension.
const (
	KittyBucketName = "kitty"
	OwnedBucketName = "owned"
)

// AssetStore keeps all kitties ever created, keyed by id. Kitties are
// never removed.
type AssetStore struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewAssetStore returns the store of kitty records.
func NewAssetStore() AssetStore {
	b := orm.NewModelBucket(KittyBucketName)
	return AssetStore{
		bucket: b,
		seq:    b.Sequence("id"),
	}
}

// Get returns the kitty with the given id or ErrNotFound.
func (s AssetStore) Get(db cattery.ReadOnlyKVStore, id uint64) (*Kitty, error) {
	var k Kitty
	if err := s.bucket.One(db, orm.EncodeSequence(id), &k); err != nil {
		return nil, errors.Wrapf(err, "kitty %d", id)
	}
	return &k, nil
}

// Put stores the kitty under its id.
func (s AssetStore) Put(db cattery.KVStore, k *Kitty) error {
	return s.bucket.Put(db, orm.EncodeSequence(k.ID), k)
}

// NextID allocates the id for a new kitty.
func (s AssetStore) NextID(db cattery.KVStore) (uint64, error) {
	id, err := s.seq.Next(db)
	if errors.ErrOverflow.Is(err) {
		return 0, errors.Wrap(ErrCounterOverflow, err.Error())
	}
	return id, err
}

// Count returns the number of kitties ever created, which is also the
// next id to be allocated.
func (s AssetStore) Count(db cattery.ReadOnlyKVStore) (uint64, error) {
	return s.seq.Current(db)
}

// OwnershipIndex lists the kitties of each account. It is only a lookup
// aid, the owner field of the kitty is authoritative.
type OwnershipIndex struct {
	bucket   orm.ModelBucket
	maxOwned uint32
}

// NewOwnershipIndex returns an index allowing at most maxOwned kitties
// per account.
func NewOwnershipIndex(maxOwned uint32) OwnershipIndex {
	return OwnershipIndex{
		bucket:   orm.NewModelBucket(OwnedBucketName),
		maxOwned: maxOwned,
	}
}

// List returns the ids owned by the account.
func (ix OwnershipIndex) List(db cattery.ReadOnlyKVStore, owner cattery.Address) ([]uint64, error) {
	l, err := ix.load(db, owner)
	if err != nil {
		return nil, err
	}
	return l.IDs, nil
}

// Full returns true when the account cannot receive another kitty.
func (ix OwnershipIndex) Full(db cattery.ReadOnlyKVStore, owner cattery.Address) (bool, error) {
	l, err := ix.load(db, owner)
	if err != nil {
		return false, err
	}
	return uint32(len(l.IDs)) >= ix.maxOwned, nil
}

// Add appends the id to the owner's list.
func (ix OwnershipIndex) Add(db cattery.KVStore, owner cattery.Address, id uint64) error {
	l, err := ix.load(db, owner)
	if err != nil {
		return err
	}
	if uint32(len(l.IDs)) >= ix.maxOwned {
		return errors.Wrapf(ErrCapacityExceeded, "%s owns %d", owner, len(l.IDs))
	}
	for _, have := range l.IDs {
		if have == id {
			return errors.Wrapf(errors.ErrDuplicate, "kitty %d", id)
		}
	}
	l.IDs = append(l.IDs, id)
	return ix.bucket.Put(db, owner, l)
}

// Remove drops the id from the owner's list. The last element takes the
// place of the removed one.
func (ix OwnershipIndex) Remove(db cattery.KVStore, owner cattery.Address, id uint64) error {
	l, err := ix.load(db, owner)
	if err != nil {
		return err
	}
	pos := -1
	for i, have := range l.IDs {
		if have == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return errors.Wrapf(errors.ErrNotFound, "kitty %d not owned by %s", id, owner)
	}
	last := len(l.IDs) - 1
	l.IDs[pos] = l.IDs[last]
	l.IDs = l.IDs[:last]

	if len(l.IDs) == 0 {
		return ix.bucket.Delete(db, owner)
	}
	return ix.bucket.Put(db, owner, l)
}

func (ix OwnershipIndex) load(db cattery.ReadOnlyKVStore, owner cattery.Address) (*OwnedList, error) {
	var l OwnedList
	err := ix.bucket.One(db, owner, &l)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	return &l, nil
}
