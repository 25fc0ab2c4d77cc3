package app

import (
	"context"
	"testing"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/catterytest"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &catterytest.Decorator{}
	c2 := &catterytest.Decorator{}
	c3 := &catterytest.Decorator{}
	var nilDecorator *catterytest.Decorator
	h := &catterytest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		nilDecorator,
		utils.NewRecovery(),
		c2,
		panicAtHeight(6),
		c3,
	).WithHandler(h)

	bg := context.Background()

	ctx := cattery.WithHeight(bg, 4)
	_, err := stack.Check(ctx, nil, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// the panic is recovered before it leaves the stack
	ctx = cattery.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, nil)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainExtend(t *testing.T) {
	c1 := &catterytest.Decorator{}
	c2 := &catterytest.Decorator{DeliverErr: errors.ErrState}
	h := &catterytest.Handler{}

	base := ChainDecorators(c1)
	extended := base.Chain(c2)

	_, err := base.WithHandler(h).Deliver(context.Background(), nil, nil)
	assert.NoError(t, err)
	_, err = extended.WithHandler(h).Deliver(context.Background(), nil, nil)
	assert.True(t, errors.ErrState.Is(err))

	assert.Equal(t, 2, c1.DeliverCallCount())
	assert.Equal(t, 1, c2.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

// panicAtHeight panics for every call made at or above the given height.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx, next cattery.Checker) (*cattery.CheckResult, error) {
	if h, _ := cattery.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx, next cattery.Deliverer) (*cattery.DeliverResult, error) {
	if h, _ := cattery.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}
