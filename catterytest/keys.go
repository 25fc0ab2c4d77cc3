package catterytest

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/crypto"
)

// NewKey returns a new, random signing key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewAddress returns the address controlled by a new, random key.
func NewAddress() cattery.Address {
	return NewKey().PublicKey().Address()
}

// SeqAddr returns a deterministic address for the given number.
// Handy for fixtures where accounts are identified by a small integer.
func SeqAddr(n uint64) cattery.Address {
	addr := make(cattery.Address, cattery.AddressLength)
	for i := len(addr) - 1; i >= 0 && n > 0; i-- {
		addr[i] = byte(n)
		n >>= 8
	}
	return addr
}

// RandomAddr returns a valid random address genearted on the fly.
func RandomAddr(t testing.TB) cattery.Address {
	raw := make([]byte, cattery.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return cattery.Address(raw)
}

// DecodeAddr takes a hex encoded address string and returns it's raw
// representation. This function ensures that returned value is a valid
// address.
func DecodeAddr(t testing.TB, encoded string) cattery.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode hex string: %s", err)
	}
	a := cattery.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("decoded string is not a valid address: %s", err)
	}
	return a
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) cattery.Address {
	t.Helper()

	addr, err := cattery.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
