package catterytest

import (
	"context"
	"fmt"

	"github.com/iov-one/cattery"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes to reference
// accounts. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer. It is
	// always reported first.
	Signer cattery.Address

	// Signers represents an authentication of multiple signers.
	Signers []cattery.Address
}

func (a *Auth) GetSigners(cattery.Context) []cattery.Address {
	if a.Signer != nil {
		return append([]cattery.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx cattery.Context, addr cattery.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx cattery.Context, signers ...cattery.Address) cattery.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx cattery.Context) []cattery.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	signers, ok := val.([]cattery.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []cattery.Address got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx cattery.Context, addr cattery.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
