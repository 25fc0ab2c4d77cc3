package app

import (
	"context"
	"testing"

	"github.com/iov-one/cattery/catterytest"
	"github.com/iov-one/cattery/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &catterytest.Handler{}
	bad := &catterytest.Handler{
		CheckErr:   errors.ErrState,
		DeliverErr: errors.ErrState,
	}
	r.Handle("kitties/good", good)
	r.Handle("kitties/bad", bad)

	// invalid registrations panic
	assert.Panics(t, func() { r.Handle("kitties/good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })

	ctx := context.Background()
	txFor := func(path string) *catterytest.Tx {
		return &catterytest.Tx{Msg: &catterytest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, nil, txFor("kitties/good"))
	require.NoError(t, err)
	_, err = r.Deliver(ctx, nil, txFor("kitties/good"))
	require.NoError(t, err)
	assert.Equal(t, 1, good.CheckCallCount())
	assert.Equal(t, 1, good.DeliverCallCount())

	_, err = r.Deliver(ctx, nil, txFor("kitties/bad"))
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, 1, bad.DeliverCallCount())

	_, err = r.Check(ctx, nil, txFor("kitties/missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, nil, txFor("kitties/missing"))
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Deliver(ctx, nil, &catterytest.Tx{Err: errors.ErrInput})
	assert.True(t, errors.ErrInput.Is(err))
	assert.Equal(t, 2, good.CallCount())
}
