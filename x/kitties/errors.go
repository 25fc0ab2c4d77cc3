package kitties

import "github.com/iov-one/cattery/errors"

// x/kitties reserves 800 ~ 809.
var (
	ErrCapacityExceeded = errors.Register(800, "ownership capacity exceeded")
	ErrBuyerIsOwner     = errors.Register(801, "buyer already owns the kitty")
	ErrSelfTransfer     = errors.Register(802, "cannot transfer to self")
	ErrNotOwner         = errors.Register(803, "not the owner")
	ErrNotForSale       = errors.Register(804, "kitty not for sale")
	ErrBidTooLow        = errors.Register(805, "bid lower than the price")
	ErrSameParent       = errors.Register(806, "cannot breed a kitty with itself")
	ErrCounterOverflow  = errors.Register(807, "kitty counter overflow")
)
