package app

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/crypto"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/x/auth"
	"github.com/iov-one/cattery/x/cash"
	"github.com/iov-one/cattery/x/kitties"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterAmino(cdc)
}

// RegisterAmino registers every message the application routes. The
// registered name is the message path.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterInterface((*cattery.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "cash/send", nil)
	cdc.RegisterConcrete(&kitties.CreateMsg{}, "kitties/create", nil)
	cdc.RegisterConcrete(&kitties.SetPriceMsg{}, "kitties/set_price", nil)
	cdc.RegisterConcrete(&kitties.TransferMsg{}, "kitties/transfer", nil)
	cdc.RegisterConcrete(&kitties.BuyMsg{}, "kitties/buy", nil)
	cdc.RegisterConcrete(&kitties.BreedMsg{}, "kitties/breed", nil)
}

// Tx is the transaction format accepted by the chain: one message
// together with the signatures authorizing it.
type Tx struct {
	Msg        cattery.Msg          `json:"msg"`
	Signatures []*auth.StdSignature `json:"signatures,omitempty"`
}

// make sure tx fulfills all interfaces
var _ cattery.Tx = (*Tx)(nil)
var _ auth.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it. A transaction
// without a message is rejected.
func TxDecoder(bz []byte) (cattery.Tx, error) {
	if len(bz) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	}
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "missing message")
	}
	return tx, nil
}

// GetMsg returns the single message carried by the transaction
func (tx *Tx) GetMsg() (cattery.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "unable to decode")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction
func (tx *Tx) GetSignatures() []*auth.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the amino JSON representation of the message.
// Signatures are not part of the signed data.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	bz, err := cdc.MarshalJSON(Tx{Msg: tx.Msg})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Marshal returns the binary wire representation of the transaction
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal decodes the binary wire representation of the transaction
func (tx *Tx) Unmarshal(bz []byte) error {
	if err := cdc.UnmarshalBinaryBare(bz, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// Sign appends the signature of the signer, using the given sequence
// of its account.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := auth.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
