package cash

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Account holds the balance of a single address.
type Account struct {
	Free     uint64 `json:"free"`
	Reserved uint64 `json:"reserved"`
}

var _ orm.Model = (*Account)(nil)

// Validate ensures the total balance can be represented.
func (a *Account) Validate() error {
	if _, ok := add(a.Free, a.Reserved); !ok {
		return errors.Wrap(errors.ErrOverflow, "total balance")
	}
	return nil
}

// Total returns the sum of free and reserved balance.
func (a *Account) Total() uint64 {
	return a.Free + a.Reserved
}

// IsEmpty is true when the account holds no funds at all.
func (a *Account) IsEmpty() bool {
	return a.Free == 0 && a.Reserved == 0
}

// Marshal encodes the model using protobuf wire format.
func (a *Account) Marshal() ([]byte, error) {
	w := orm.NewWriter()
	w.Uint64(1, a.Free)
	w.Uint64(2, a.Reserved)
	return w.Result()
}

// Unmarshal decodes a model encoded by Marshal.
func (a *Account) Unmarshal(raw []byte) error {
	*a = Account{}
	return orm.DecodeFields(raw, func(f orm.Field) error {
		var err error
		switch f.Number {
		case 1:
			a.Free, err = f.Uint64()
		case 2:
			a.Reserved, err = f.Uint64()
		}
		return err
	})
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName),
	}
}

// Get returns the account stored under the address. An address that was
// never funded has an empty account.
func (b Bucket) Get(db cattery.ReadOnlyKVStore, addr cattery.Address) (*Account, error) {
	var acc Account
	err := b.One(db, addr, &acc)
	switch {
	case errors.ErrNotFound.Is(err):
		return &Account{}, nil
	case err != nil:
		return nil, err
	}
	return &acc, nil
}

// Save writes the account under the address. Empty accounts are removed
// from the store.
func (b Bucket) Save(db cattery.KVStore, addr cattery.Address, acc *Account) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if acc.IsEmpty() {
		if err := db.Delete(b.DBKey(addr)); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
		return nil
	}
	return b.Put(db, addr, acc)
}

func add(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}
