package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName prefixes the data an account address is derived from.
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message, sig []byte) bool
	Address() cattery.Address
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() PubKey
}

// PubKeyEd25519 is an ed25519 public key.
type PubKeyEd25519 [ed25519.PublicKeySize]byte

var _ PubKey = PubKeyEd25519{}

// Verify verifies the signature was created with this message and public key
func (p PubKeyEd25519) Verify(message, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p[:]), message, sig)
}

// Address returns the account controlled by this key.
func (p PubKeyEd25519) Address() cattery.Address {
	data := append([]byte(ExtensionName+"/ed25519/"), p[:]...)
	return cattery.NewAddress(data)
}

// Equals returns true if both keys are the same.
func (p PubKeyEd25519) Equals(o PubKey) bool {
	other, ok := o.(PubKeyEd25519)
	return ok && bytes.Equal(p[:], other[:])
}

// MarshalJSON encodes the key as a hex string.
func (p PubKeyEd25519) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(p[:]))
}

// UnmarshalJSON decodes a hex encoded key.
func (p *PubKeyEd25519) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "public key must be a string")
	}
	b, err := hex.DecodeString(enc)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	if len(b) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", len(b))
	}
	copy(p[:], b)
	return nil
}

// PrivKeyEd25519 is an ed25519 private key.
type PrivKeyEd25519 [ed25519.PrivateKeySize]byte

var _ Signer = PrivKeyEd25519{}

// Sign returns a matching signature for this private key
func (p PrivKeyEd25519) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(ed25519.PrivateKey(p[:]), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p PrivKeyEd25519) PublicKey() PubKey {
	var pub PubKeyEd25519
	copy(pub[:], ed25519.PrivateKey(p[:]).Public().(ed25519.PublicKey))
	return pub
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() PrivKeyEd25519 {
	return genPrivKey(rand.Reader)
}

// PrivKeyEd25519FromSeed returns a key derived from the given seed.
// The same seed always produces the same key, which is handy for
// fixtures and for a single validator devnet.
func PrivKeyEd25519FromSeed(seed []byte) PrivKeyEd25519 {
	return genPrivKey(bytes.NewReader(append(seed, make([]byte, ed25519.SeedSize)...)))
}

func genPrivKey(r io.Reader) PrivKeyEd25519 {
	_, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		panic(err)
	}
	var key PrivKeyEd25519
	copy(key[:], priv)
	return key
}
