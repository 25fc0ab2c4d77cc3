package auth

import (
	"github.com/iov-one/cattery/crypto"
	"github.com/iov-one/cattery/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the auth.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	// The same message must always result in the same bytes.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature of the transaction, together with the key
// that created it and the sequence of the signing account.
type StdSignature struct {
	Pubkey    crypto.PubKeyEd25519 `json:"pubkey"`
	Signature []byte               `json:"signature"`
	Sequence  int64                `json:"sequence"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == (crypto.PubKeyEd25519{}) {
		return errors.Wrap(errors.ErrUnauthenticated, "missing public key")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthenticated, "missing signature")
	}
	return nil
}
