package cash

import "github.com/iov-one/cattery/errors"

// x/cash reserves 810 ~ 819.
var (
	ErrInsufficientFunds = errors.Register(810, "insufficient funds")
)
