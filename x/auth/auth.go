/*
Package auth provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

Extensions never depend on this implementation directly. They receive an
Authenticator in their constructor, so tests can plug in a mock.
*/
package auth

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system.
type Authenticator interface {
	// GetSigners returns all accounts that authorized the current
	// transaction, main signer first.
	GetSigners(cattery.Context) []cattery.Address
	// HasAddress checks if any signer matches this address
	HasAddress(cattery.Context, cattery.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators
func (m MultiAuth) GetSigners(ctx cattery.Context) []cattery.Address {
	var res []cattery.Address
	for _, impl := range m.impls {
		res = append(res, impl.GetSigners(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx cattery.Context, addr cattery.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer of the transaction. The main signer
// is the account all extension operations act on behalf of.
func MainSigner(ctx cattery.Context, auth Authenticator) (cattery.Address, error) {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthenticated, "no signer")
	}
	return signers[0], nil
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx cattery.Context, auth Authenticator, required []cattery.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
