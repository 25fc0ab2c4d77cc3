package auth

import "github.com/iov-one/cattery/errors"

// x/auth reserves 820 ~ 829.
var (
	ErrInvalidSequence  = errors.Register(820, "invalid sequence number")
	ErrInvalidSignature = errors.Register(821, "invalid signature")
)
