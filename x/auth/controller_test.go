package auth

import (
	"testing"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/crypto"
	"github.com/iov-one/cattery/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	bz := []byte("foobar")
	tx := &stdTx{bytes: bz}
	bz2 := []byte("blast")

	// make sure sign bytes match tx
	chainID := "test-sign-bytes"
	c1, err := BuildSignBytesTx(tx, chainID, 17)
	require.NoError(t, err)
	c1a, err := BuildSignBytes(bz, chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, c1, c1a)
	assert.NotEqual(t, bz, c1)
	assert.Len(t, c1, 64)

	// make sure sign bytes change on tx, chain_id and seq
	ct, err := BuildSignBytes(bz2, chainID, 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2", 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)
	c3, err := BuildSignBytes(bz, chainID, 18)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c3)

	_, err = BuildSignBytes(bz, "bad chain!", 1)
	assert.Error(t, err)
	_, err = BuildSignBytes(bz, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	addr := priv.PublicKey().Address()

	chainID := "emo-music-2345"
	bz := []byte("my special valentine")
	tx := &stdTx{bytes: bz}

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	sig2, err := SignTx(priv, tx, chainID, 2)
	require.NoError(t, err)
	sig13, err := SignTx(priv, tx, chainID, 13)
	require.NoError(t, err)
	empty := new(StdSignature)

	// signing should be deterministic
	sig2a, err := SignTx(priv, tx, chainID, 2)
	require.NoError(t, err)
	assert.Equal(t, sig2, sig2a)

	// the first one must start at sequence zero
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	// empty sig
	_, err = VerifySignature(kv, empty, bz, chainID)
	assert.Error(t, err)

	// signed with a different chain
	_, err = VerifySignature(kv, sig0, bz, "metal-music-2345")
	assert.True(t, ErrInvalidSignature.Is(err))

	// signed different bytes
	_, err = VerifySignature(kv, sig0, []byte("other bytes"), chainID)
	assert.True(t, ErrInvalidSignature.Is(err))

	seq, err := NextSequence(kv, addr)
	require.NoError(t, err)
	assert.EqualValues(t, 0, seq)

	// this should be okay and increment the sequence
	signer, err := VerifySignature(kv, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, addr, signer)
	seq, err = NextSequence(kv, addr)
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq)

	// replay is rejected
	_, err = VerifySignature(kv, sig0, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	// no skipping ahead
	_, err = VerifySignature(kv, sig13, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	signer, err = VerifySignature(kv, sig1, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, addr, signer)
}

func TestVerifyTxSignatures(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	priv2 := crypto.GenPrivKeyEd25519()
	addr := priv.PublicKey().Address()
	addr2 := priv2.PublicKey().Address()

	chainID := "hot_summer_days"
	tx := &stdTx{bytes: []byte("sing a song")}

	// no signatures is no signers
	signers, err := VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, signers)

	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig2, err := SignTx(priv2, tx, chainID, 0)
	require.NoError(t, err)
	tx.sigs = []*StdSignature{sig, sig2}

	signers, err = VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []cattery.Address{addr, addr2}, signers)

	// same signatures cannot be used twice
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
}

func TestUserDataModel(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey().(crypto.PubKeyEd25519)

	user := UserData{Pubkey: pub, Sequence: 42}
	raw, err := user.Marshal()
	require.NoError(t, err)

	var loaded UserData
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, user, loaded)

	assert.True(t, ErrInvalidSequence.Is(loaded.CheckAndIncrementSequence(41)))
	require.NoError(t, loaded.CheckAndIncrementSequence(42))
	assert.EqualValues(t, 43, loaded.Sequence)

	bad := UserData{Pubkey: pub, Sequence: -1}
	assert.True(t, ErrInvalidSequence.Is(bad.Validate()))
}

// stdTx is a minimal SignedTx carrying raw bytes to sign.
type stdTx struct {
	bytes []byte
	sigs  []*StdSignature
}

var _ SignedTx = (*stdTx)(nil)
var _ cattery.Tx = (*stdTx)(nil)

func (tx *stdTx) GetMsg() (cattery.Msg, error) {
	return nil, nil
}

func (tx *stdTx) GetSignBytes() ([]byte, error) {
	return tx.bytes, nil
}

func (tx *stdTx) GetSignatures() []*StdSignature {
	return tx.sigs
}
