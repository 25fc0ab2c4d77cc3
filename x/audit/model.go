/*
Package audit keeps an append-only log of everything that happened to
the assets: every mint, listing, transfer, sale and breeding.

Events are stored under a sequence number and are never updated or
removed.
*/
package audit

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
)

// Kind names what happened.
type Kind string

// Kinds of events emitted by the kitties extension.
const (
	KindCreated     Kind = "created"
	KindPriceSet    Kind = "price-set"
	KindTransferred Kind = "transferred"
	KindBought      Kind = "bought"
	KindBred        Kind = "bred"
)

func (k Kind) isValid() bool {
	switch k {
	case KindCreated, KindPriceSet, KindTransferred, KindBought, KindBred:
		return true
	}
	return false
}

// Event is a single log entry. Fields that do not apply to a kind are
// left empty.
type Event struct {
	Kind   Kind  `json:"kind"`
	Height int64 `json:"height"`
	// Account is the one that triggered the event.
	Account cattery.Address `json:"account"`
	// Counterparty receives the asset (transfer) or the payment (buy).
	Counterparty cattery.Address `json:"counterparty,omitempty"`
	AssetID      uint64          `json:"asset_id"`
	// Amount is the fee reserved, the price asked or the bid paid.
	Amount uint64 `json:"amount,omitempty"`
	// Released is the reservation given back on a sale.
	Released uint64 `json:"released,omitempty"`
	// Listed is false when the asset was withdrawn from sale.
	Listed  bool     `json:"listed,omitempty"`
	Parents []uint64 `json:"parents,omitempty"`
}

var _ orm.Model = (*Event)(nil)

// Validate checks the event is complete.
func (e *Event) Validate() error {
	if !e.Kind.isValid() {
		return errors.Wrapf(errors.ErrModel, "unknown kind %q", e.Kind)
	}
	if e.Height < 0 {
		return errors.Wrap(errors.ErrModel, "negative height")
	}
	if err := e.Account.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	if len(e.Counterparty) != 0 {
		if err := e.Counterparty.Validate(); err != nil {
			return errors.Wrap(err, "counterparty")
		}
	}
	if e.Kind == KindBred && len(e.Parents) != 2 {
		return errors.Wrap(errors.ErrModel, "breeding requires two parents")
	}
	return nil
}

// Marshal encodes the model using protobuf wire format.
func (e *Event) Marshal() ([]byte, error) {
	w := orm.NewWriter()
	w.Bytes(1, []byte(e.Kind))
	w.Uint64(2, uint64(e.Height))
	w.Bytes(3, e.Account)
	w.Bytes(4, e.Counterparty)
	w.PresentUint64(5, e.AssetID)
	w.Uint64(6, e.Amount)
	w.Uint64(7, e.Released)
	if e.Listed {
		w.Uint64(8, 1)
	}
	for _, p := range e.Parents {
		w.PresentUint64(9, p)
	}
	return w.Result()
}

// Unmarshal decodes a model encoded by Marshal.
func (e *Event) Unmarshal(raw []byte) error {
	*e = Event{}
	return orm.DecodeFields(raw, func(f orm.Field) error {
		switch f.Number {
		case 1, 3, 4:
			b, err := f.Bytes()
			if err != nil {
				return err
			}
			switch f.Number {
			case 1:
				e.Kind = Kind(b)
			case 3:
				e.Account = b
			case 4:
				e.Counterparty = b
			}
		case 2, 5, 6, 7, 8, 9:
			v, err := f.Uint64()
			if err != nil {
				return err
			}
			switch f.Number {
			case 2:
				e.Height = int64(v)
			case 5:
				e.AssetID = v
			case 6:
				e.Amount = v
			case 7:
				e.Released = v
			case 8:
				e.Listed = v != 0
			case 9:
				e.Parents = append(e.Parents, v)
			}
		}
		return nil
	})
}
