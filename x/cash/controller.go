package cash

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
)

// ExistencePolicy tells a transfer how to treat the balance left behind
// on the paying account.
type ExistencePolicy int

const (
	// KeepAlive requires the payer to keep at least MinimalBalance free.
	KeepAlive ExistencePolicy = iota
	// AllowDeath allows the payer to be drained completely.
	AllowDeath
)

func (p ExistencePolicy) String() string {
	switch p {
	case KeepAlive:
		return "keep-alive"
	case AllowDeath:
		return "allow-death"
	default:
		return "unknown"
	}
}

// Controller is the only way other extensions should access balances.
type Controller struct {
	bucket Bucket
	conf   Configuration
}

// NewController returns a controller enforcing the given configuration.
func NewController(conf Configuration) Controller {
	return Controller{
		bucket: NewBucket(),
		conf:   conf,
	}
}

// MinimalBalance returns the floor enforced by KeepAlive transfers.
func (c Controller) MinimalBalance() uint64 {
	return c.conf.MinimalBalance
}

// Balance returns the free balance of the account.
func (c Controller) Balance(db cattery.ReadOnlyKVStore, addr cattery.Address) (uint64, error) {
	acc, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Free, nil
}

// Reserved returns the reserved balance of the account.
func (c Controller) Reserved(db cattery.ReadOnlyKVStore, addr cattery.Address) (uint64, error) {
	acc, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Reserved, nil
}

// Reserve moves amount from the free to the reserved balance. It fails
// with ErrInsufficientFunds if the free balance is too low.
func (c Controller) Reserve(db cattery.KVStore, addr cattery.Address, amount uint64) error {
	acc, err := c.bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if acc.Free < amount {
		return errors.Wrapf(ErrInsufficientFunds, "reserve %d, free %d", amount, acc.Free)
	}
	acc.Free -= amount
	acc.Reserved += amount
	return c.bucket.Save(db, addr, acc)
}

// Unreserve moves up to amount from the reserved back to the free
// balance, and returns how much was actually released.
func (c Controller) Unreserve(db cattery.KVStore, addr cattery.Address, amount uint64) (uint64, error) {
	acc, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	released := amount
	if acc.Reserved < released {
		released = acc.Reserved
	}
	if released == 0 {
		return 0, nil
	}
	acc.Reserved -= released
	acc.Free += released
	if err := c.bucket.Save(db, addr, acc); err != nil {
		return 0, err
	}
	return released, nil
}

// Transfer moves amount of free balance from one account to another. With
// KeepAlive the payer must be left with at least MinimalBalance.
func (c Controller) Transfer(db cattery.KVStore, from, to cattery.Address, amount uint64, policy ExistencePolicy) error {
	if from.Equals(to) {
		return nil
	}
	src, err := c.bucket.Get(db, from)
	if err != nil {
		return err
	}
	if src.Free < amount {
		return errors.Wrapf(ErrInsufficientFunds, "transfer %d, free %d", amount, src.Free)
	}
	if policy == KeepAlive && src.Free-amount < c.conf.MinimalBalance {
		return errors.Wrapf(ErrInsufficientFunds, "payer must keep %d", c.conf.MinimalBalance)
	}
	dst, err := c.bucket.Get(db, to)
	if err != nil {
		return err
	}
	free, ok := add(dst.Free, amount)
	if !ok {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	src.Free -= amount
	dst.Free = free
	if err := c.bucket.Save(db, from, src); err != nil {
		return err
	}
	return c.bucket.Save(db, to, dst)
}

// Issue creates amount of new free balance on the account.
func (c Controller) Issue(db cattery.KVStore, addr cattery.Address, amount uint64) error {
	acc, err := c.bucket.Get(db, addr)
	if err != nil {
		return err
	}
	free, ok := add(acc.Free, amount)
	if !ok {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	acc.Free = free
	return c.bucket.Save(db, addr, acc)
}
