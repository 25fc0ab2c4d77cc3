package auth

import (
	"context"
	"testing"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/catterytest"
	"github.com/iov-one/cattery/crypto"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(sigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := cattery.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	addrs := []cattery.Address{priv.PublicKey().Address()}

	tx := &stdTx{bytes: []byte("art")}
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec cattery.Decorator, my cattery.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec cattery.Decorator, my cattery.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(cattery.Decorator, cattery.Tx) error{check, deliver} {
		// test with no sigs
		tx.sigs = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthenticated.Is(err), "%d", i)

		// test with one
		tx.sigs = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, addrs, signers.Signers)

		// test with replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d", i)

		// test allowing none
		ad := d.AllowMissingSigs()
		tx.sigs = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, []cattery.Address{}, signers.Signers)

		// test allowing, with next sequence
		tx.sigs = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, addrs, signers.Signers)
	}
}

func TestDecoratorRejectsUnsignedTx(t *testing.T) {
	ctx := cattery.WithChainID(context.Background(), "deco-rate")
	tx := &catterytest.Tx{Msg: &catterytest.Msg{RoutePath: "test/path"}}
	handler := &catterytest.Handler{}

	_, err := NewDecorator().Deliver(ctx, store.MemStore(), tx, handler)
	assert.True(t, errors.ErrUnauthenticated.Is(err))
	assert.Equal(t, 0, handler.CallCount())

	_, err = NewDecorator().AllowMissingSigs().Deliver(ctx, store.MemStore(), tx, handler)
	assert.NoError(t, err)
	assert.Equal(t, 1, handler.CallCount())
}

// sigCheckHandler stores the seen signers on each call
type sigCheckHandler struct {
	Signers []cattery.Address
}

var _ cattery.Handler = (*sigCheckHandler)(nil)

func (s *sigCheckHandler) Check(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &cattery.CheckResult{}, nil
}

func (s *sigCheckHandler) Deliver(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &cattery.DeliverResult{}, nil
}
