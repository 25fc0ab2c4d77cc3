package kitties

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/x/audit"
	"github.com/iov-one/cattery/x/cash"
	"github.com/iov-one/cattery/x/random"
	"github.com/iov-one/cattery/x/utils"
)

// EscrowGateway is the currency used to pay for kitties and to lock the
// reservation fee.
type EscrowGateway interface {
	Balance(db cattery.ReadOnlyKVStore, addr cattery.Address) (uint64, error)
	Reserve(db cattery.KVStore, addr cattery.Address, amount uint64) error
	Unreserve(db cattery.KVStore, addr cattery.Address, amount uint64) (uint64, error)
	Transfer(db cattery.KVStore, from, to cattery.Address, amount uint64, policy cash.ExistencePolicy) error
}

var _ EscrowGateway = cash.Controller{}

// Controller implements all state transitions of kitties. Every public
// method is atomic: it either applies all its changes or none.
//
// Callers are expected to be authenticated already, the controller only
// checks that they are entitled to the operation.
type Controller struct {
	assets AssetStore
	owned  OwnershipIndex
	gen    IdentityGenerator
	escrow EscrowGateway
	log    audit.Log
	fee    uint64
}

// NewController returns a controller enforcing the given configuration.
func NewController(conf Configuration, escrow EscrowGateway, src random.Source) Controller {
	return Controller{
		assets: NewAssetStore(),
		owned:  NewOwnershipIndex(conf.MaxOwned),
		gen:    NewIdentityGenerator(src),
		escrow: escrow,
		log:    audit.NewLog(),
		fee:    conf.ReservationFee,
	}
}

// Mint creates a new kitty for the owner and returns its id. Genome and
// gender are generated when not given. The reservation fee is reserved
// from the owner.
func (c Controller) Mint(ctx cattery.Context, db cattery.KVStore, owner cattery.Address, genome *Genome, gender *Gender) (uint64, error) {
	var id uint64
	err := utils.Atomic(db, func(db cattery.KVStore) error {
		var err error
		id, err = c.mint(ctx, db, owner, genome, gender, true)
		return err
	})
	return id, err
}

// mint creates the kitty. The reservation is skipped when reserve is
// false, which is only done while loading genesis.
func (c Controller) mint(ctx cattery.Context, db cattery.KVStore, owner cattery.Address, genome *Genome, gender *Gender, reserve bool) (uint64, error) {
	if err := owner.Validate(); err != nil {
		return 0, errors.Wrap(err, "owner")
	}
	var fee uint64
	if reserve {
		fee = c.fee
		if err := c.escrow.Reserve(db, owner, fee); err != nil {
			return 0, errors.Wrap(err, "reservation fee")
		}
	}

	id, err := c.assets.NextID(db)
	if err != nil {
		return 0, err
	}

	k := Kitty{ID: id, Owner: owner}
	if genome != nil {
		k.Genome = *genome
	} else if k.Genome, err = c.gen.Genome(ctx); err != nil {
		return 0, err
	}
	if gender != nil {
		k.Gender = *gender
	} else if k.Gender, err = c.gen.Gender(ctx); err != nil {
		return 0, err
	}

	if err := c.assets.Put(db, &k); err != nil {
		return 0, err
	}
	if err := c.owned.Add(db, owner, id); err != nil {
		return 0, err
	}
	if _, err := c.log.Append(ctx, db, audit.Event{
		Kind:    audit.KindCreated,
		Account: owner,
		AssetID: id,
		Amount:  fee,
	}); err != nil {
		return 0, err
	}
	cattery.GetLogger(ctx).Debug("kitty created", "kitty", id, "owner", owner)
	return id, nil
}

// SetPrice opens a sale of the kitty for the given price, or closes it
// when price is nil.
func (c Controller) SetPrice(ctx cattery.Context, db cattery.KVStore, caller cattery.Address, id uint64, price *uint64) error {
	return utils.Atomic(db, func(db cattery.KVStore) error {
		k, err := c.ownedBy(db, caller, id)
		if err != nil {
			return err
		}
		k.Price = price
		if err := c.assets.Put(db, k); err != nil {
			return err
		}
		ev := audit.Event{
			Kind:    audit.KindPriceSet,
			Account: caller,
			AssetID: id,
			Listed:  price != nil,
		}
		if price != nil {
			ev.Amount = *price
		}
		_, err = c.log.Append(ctx, db, ev)
		return err
	})
}

// Transfer gives the kitty to another account. Any open sale is closed.
func (c Controller) Transfer(ctx cattery.Context, db cattery.KVStore, caller cattery.Address, id uint64, to cattery.Address) error {
	return utils.Atomic(db, func(db cattery.KVStore) error {
		k, err := c.ownedBy(db, caller, id)
		if err != nil {
			return err
		}
		if to.Equals(caller) {
			return errors.Wrapf(ErrSelfTransfer, "kitty %d", id)
		}
		if err := to.Validate(); err != nil {
			return errors.Wrap(err, "recipient")
		}
		if err := c.move(db, k, to); err != nil {
			return err
		}
		_, err = c.log.Append(ctx, db, audit.Event{
			Kind:         audit.KindTransferred,
			Account:      caller,
			Counterparty: to,
			AssetID:      id,
		})
		return err
	})
}

// Buy pays bid to the owner of a kitty for sale and takes it over. The
// reservation fee of the buyer is released. The paid amount is returned.
func (c Controller) Buy(ctx cattery.Context, db cattery.KVStore, caller cattery.Address, id uint64, bid uint64) (uint64, error) {
	err := utils.Atomic(db, func(db cattery.KVStore) error {
		k, err := c.assets.Get(db, id)
		if err != nil {
			return err
		}
		seller := k.Owner
		if seller.Equals(caller) {
			return errors.Wrapf(ErrBuyerIsOwner, "kitty %d", id)
		}
		if k.Price == nil {
			return errors.Wrapf(ErrNotForSale, "kitty %d", id)
		}
		if bid < *k.Price {
			return errors.Wrapf(ErrBidTooLow, "bid %d, price %d", bid, *k.Price)
		}
		free, err := c.escrow.Balance(db, caller)
		if err != nil {
			return err
		}
		if free < bid {
			return errors.Wrapf(cash.ErrInsufficientFunds, "bid %d, free %d", bid, free)
		}
		if full, err := c.owned.Full(db, caller); err != nil {
			return err
		} else if full {
			return errors.Wrapf(ErrCapacityExceeded, "buyer %s", caller)
		}

		if err := c.escrow.Transfer(db, caller, seller, bid, cash.KeepAlive); err != nil {
			return errors.Wrap(err, "payment")
		}
		if err := c.move(db, k, caller); err != nil {
			return err
		}
		released, err := c.escrow.Unreserve(db, caller, c.fee)
		if err != nil {
			return errors.Wrap(err, "release reservation")
		}
		_, err = c.log.Append(ctx, db, audit.Event{
			Kind:         audit.KindBought,
			Account:      caller,
			Counterparty: seller,
			AssetID:      id,
			Amount:       bid,
			Released:     released,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	cattery.GetLogger(ctx).Info("kitty sold", "kitty", id, "owner", caller, "bid", bid)
	return bid, nil
}

// Breed creates a new kitty for the caller from two of its kitties. The
// genome of the child takes every bit from one of the parents, chosen by a
// random mask. Breeding mints, so the reservation fee is reserved.
func (c Controller) Breed(ctx cattery.Context, db cattery.KVStore, caller cattery.Address, parent1, parent2 uint64) (uint64, error) {
	if parent1 == parent2 {
		return 0, errors.Wrapf(ErrSameParent, "kitty %d", parent1)
	}
	var id uint64
	err := utils.Atomic(db, func(db cattery.KVStore) error {
		p1, err := c.ownedBy(db, caller, parent1)
		if err != nil {
			return errors.Wrap(err, "first parent")
		}
		p2, err := c.ownedBy(db, caller, parent2)
		if err != nil {
			return errors.Wrap(err, "second parent")
		}

		mask, err := c.gen.Genome(ctx)
		if err != nil {
			return err
		}
		genome := BreedGenome(mask, p1.Genome, p2.Genome)
		gender, err := c.gen.Gender(ctx)
		if err != nil {
			return err
		}

		if id, err = c.mint(ctx, db, caller, &genome, &gender, true); err != nil {
			return err
		}
		_, err = c.log.Append(ctx, db, audit.Event{
			Kind:    audit.KindBred,
			Account: caller,
			AssetID: id,
			Parents: []uint64{parent1, parent2},
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ownedBy loads the kitty and ensures the caller owns it.
func (c Controller) ownedBy(db cattery.ReadOnlyKVStore, caller cattery.Address, id uint64) (*Kitty, error) {
	k, err := c.assets.Get(db, id)
	if err != nil {
		return nil, err
	}
	if !k.Owner.Equals(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "kitty %d", id)
	}
	return k, nil
}

// move hands the kitty over to a new owner and closes any sale. The index
// and the record are always updated together.
func (c Controller) move(db cattery.KVStore, k *Kitty, to cattery.Address) error {
	if err := c.owned.Remove(db, k.Owner, k.ID); err != nil {
		return errors.Wrap(err, "ownership index")
	}
	if err := c.owned.Add(db, to, k.ID); err != nil {
		return err
	}
	k.Owner = to
	k.Price = nil
	return c.assets.Put(db, k)
}

// Get returns the kitty with the given id.
func (c Controller) Get(db cattery.ReadOnlyKVStore, id uint64) (*Kitty, error) {
	return c.assets.Get(db, id)
}

// Owned returns the ids of all kitties of the account.
func (c Controller) Owned(db cattery.ReadOnlyKVStore, owner cattery.Address) ([]uint64, error) {
	return c.owned.List(db, owner)
}

// Count returns the number of kitties ever created.
func (c Controller) Count(db cattery.ReadOnlyKVStore) (uint64, error) {
	return c.assets.Count(db)
}
