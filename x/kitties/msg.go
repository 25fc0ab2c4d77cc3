package kitties

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
)

// Message paths routed to this extension.
const (
	pathCreateMsg   = "kitties/create"
	pathSetPriceMsg = "kitties/set_price"
	pathTransferMsg = "kitties/transfer"
	pathBuyMsg      = "kitties/buy"
	pathBreedMsg    = "kitties/breed"
)

// CreateMsg mints a kitty with a random genome for the signer.
type CreateMsg struct{}

var _ cattery.Msg = (*CreateMsg)(nil)

// Path returns the routing path for this message
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate accepts any create request
func (CreateMsg) Validate() error {
	return nil
}

// SetPriceMsg opens or closes the sale of a kitty owned by the signer.
type SetPriceMsg struct {
	KittyID uint64 `json:"kitty_id"`
	// ForSale false withdraws the kitty from sale.
	ForSale bool   `json:"for_sale"`
	Price   uint64 `json:"price,omitempty"`
}

var _ cattery.Msg = (*SetPriceMsg)(nil)

// Path returns the routing path for this message
func (SetPriceMsg) Path() string {
	return pathSetPriceMsg
}

// Validate accepts any price, a zero ask gives the kitty away to the
// first buyer.
func (m *SetPriceMsg) Validate() error {
	if !m.ForSale && m.Price != 0 {
		return errors.Wrap(errors.ErrInput, "price set for a kitty not for sale")
	}
	return nil
}

// Ask returns the price requested, nil when the kitty is withdrawn
// from sale.
func (m *SetPriceMsg) Ask() *uint64 {
	if !m.ForSale {
		return nil
	}
	price := m.Price
	return &price
}

// TransferMsg gives a kitty owned by the signer to another account.
type TransferMsg struct {
	KittyID uint64          `json:"kitty_id"`
	To      cattery.Address `json:"to"`
}

var _ cattery.Msg = (*TransferMsg)(nil)

// Path returns the routing path for this message
func (TransferMsg) Path() string {
	return pathTransferMsg
}

// Validate makes sure that this is sensible
func (m *TransferMsg) Validate() error {
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	return nil
}

// BuyMsg buys a kitty for sale. The whole Bid is paid to the seller,
// even when it is above the asking price.
type BuyMsg struct {
	KittyID uint64 `json:"kitty_id"`
	Bid     uint64 `json:"bid"`
}

var _ cattery.Msg = (*BuyMsg)(nil)

// Path returns the routing path for this message
func (BuyMsg) Path() string {
	return pathBuyMsg
}

// Validate accepts any bid
func (BuyMsg) Validate() error {
	return nil
}

// BreedMsg breeds two kitties owned by the signer.
type BreedMsg struct {
	Parent1 uint64 `json:"parent1"`
	Parent2 uint64 `json:"parent2"`
}

var _ cattery.Msg = (*BreedMsg)(nil)

// Path returns the routing path for this message
func (BreedMsg) Path() string {
	return pathBreedMsg
}

// Validate rejects breeding a kitty with itself
func (m *BreedMsg) Validate() error {
	if m.Parent1 == m.Parent2 {
		return errors.Wrapf(ErrSameParent, "kitty %d", m.Parent1)
	}
	return nil
}
