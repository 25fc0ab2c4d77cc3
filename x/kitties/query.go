package kitties

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
)

// RegisterQuery exposes kitties as "/kitties", queried by the 8 byte big
// endian id, and the ownership lists as "/kitties/owner", queried by the
// raw address.
func RegisterQuery(qr cattery.QueryRouter) {
	assets := NewAssetStore()
	qr.Register("/kitties", cattery.QueryHandlerFunc(func(db cattery.ReadOnlyKVStore, data []byte) (interface{}, error) {
		if len(data) != 8 {
			return nil, errors.Wrap(errors.ErrInput, "kitty id must be 8 bytes")
		}
		id, err := orm.DecodeSequence(data)
		if err != nil {
			return nil, err
		}
		return assets.Get(db, id)
	}))

	// Reading the list does not depend on the capacity.
	owned := NewOwnershipIndex(0)
	qr.Register("/kitties/owner", cattery.QueryHandlerFunc(func(db cattery.ReadOnlyKVStore, data []byte) (interface{}, error) {
		owner := cattery.Address(data)
		if err := owner.Validate(); err != nil {
			return nil, err
		}
		ids, err := owned.List(db, owner)
		if err != nil {
			return nil, err
		}
		return OwnedList{IDs: ids}, nil
	}))
}
