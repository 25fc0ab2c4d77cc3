package auth

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/crypto"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is limited by the client. The greatest supported
// nonce value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData is the signing state of an account: the key that controls it
// and the sequence expected in its next signature.
type UserData struct {
	Pubkey   crypto.PubKeyEd25519
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

// Validate checks the sequence is in range.
func (u *UserData) Validate() error {
	if u.Sequence < 0 || u.Sequence > maxSequenceValue {
		return errors.Wrapf(ErrInvalidSequence, "sequence %d", u.Sequence)
	}
	return nil
}

// Marshal encodes the model using protobuf wire format.
func (u *UserData) Marshal() ([]byte, error) {
	w := orm.NewWriter()
	w.Bytes(1, u.Pubkey[:])
	w.Uint64(2, uint64(u.Sequence))
	return w.Result()
}

// Unmarshal decodes a model encoded by Marshal.
func (u *UserData) Unmarshal(raw []byte) error {
	*u = UserData{}
	return orm.DecodeFields(raw, func(f orm.Field) error {
		switch f.Number {
		case 1:
			b, err := f.Bytes()
			if err != nil {
				return err
			}
			if len(b) != len(u.Pubkey) {
				return errors.Wrapf(errors.ErrModel, "public key of %d bytes", len(b))
			}
			copy(u.Pubkey[:], b)
		case 2:
			v, err := f.Uint64()
			if err != nil {
				return err
			}
			u.Sequence = int64(v)
		}
		return nil
	})
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// UserBucket stores the signing state of every account that ever signed
// a transaction, keyed by the address.
type UserBucket struct {
	orm.ModelBucket
}

// NewUserBucket returns the bucket holding UserData.
func NewUserBucket() UserBucket {
	return UserBucket{orm.NewModelBucket(BucketName)}
}

// GetOrCreate loads the state of the account controlled by the key, or
// returns a fresh one if the account never signed anything.
func (b UserBucket) GetOrCreate(db cattery.ReadOnlyKVStore, pub crypto.PubKeyEd25519) (*UserData, error) {
	var user UserData
	err := b.One(db, pub.Address(), &user)
	switch {
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pub}, nil
	case err != nil:
		return nil, err
	}
	if user.Pubkey != pub {
		return nil, errors.Wrap(ErrInvalidSignature, "public key does not match the account")
	}
	return &user, nil
}

// Save persists the account state.
func (b UserBucket) Save(db cattery.KVStore, user *UserData) error {
	return b.Put(db, user.Pubkey.Address(), user)
}
