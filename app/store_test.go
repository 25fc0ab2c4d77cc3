package app

import (
	"context"
	"testing"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestStoreAppInfo(t *testing.T) {
	app := NewStoreApp("kittens", iavl.MockCommitStore(), cattery.NewQueryRouter(), context.Background())

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, "kittens", info.Data)
	assert.Equal(t, cattery.Version(), info.Version)
	assert.Equal(t, int64(0), info.LastBlockHeight)

	height, ok := cattery.GetHeight(app.BlockContext())
	assert.True(t, ok)
	assert.Equal(t, int64(0), height)

	app.DeliverStore().Set([]byte("k"), []byte("v"))
	cres := app.Commit()

	info = app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, cres.Data, info.LastBlockAppHash)

	assert.Equal(t, "Not Implemented", app.SetOption(abci.RequestSetOption{}).Log)
}

func TestStoreAppQueryErrors(t *testing.T) {
	qr := cattery.NewQueryRouter()
	qr.Register("/fails", cattery.QueryHandlerFunc(func(cattery.ReadOnlyKVStore, []byte) (interface{}, error) {
		return nil, errors.Wrap(errors.ErrEmpty, "nothing here")
	}))
	qr.Register("/unencodable", cattery.QueryHandlerFunc(func(cattery.ReadOnlyKVStore, []byte) (interface{}, error) {
		return make(chan int), nil
	}))
	app := NewStoreApp("kittens", iavl.MockCommitStore(), qr, nil)

	cases := map[string]struct {
		path     string
		wantCode uint32
	}{
		"unknown path":   {path: "/missing", wantCode: errors.ErrNotFound.ABCICode()},
		"handler error":  {path: "/fails", wantCode: errors.ErrEmpty.ABCICode()},
		"cannot marshal": {path: "/unencodable", wantCode: errors.ErrType.ABCICode()},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res := app.Query(abci.RequestQuery{Path: tc.path, Data: []byte("x")})
			assert.Equal(t, tc.wantCode, res.Code, res.Log)
			assert.Empty(t, res.Value)
		})
	}
}

func TestStoreAppGenesis(t *testing.T) {
	app := NewStoreApp("kittens", iavl.MockCommitStore(), cattery.NewQueryRouter(), nil)
	assert.Equal(t, "", app.GetChainID())

	// without an initializer only the chain id is stored
	err := app.parseAppState([]byte(`{"anything": 1}`), "kitten-chain")
	require.NoError(t, err)
	assert.Equal(t, "kitten-chain", app.GetChainID())
	assert.Equal(t, "kitten-chain", cattery.GetChainID(app.baseContext))

	err = app.parseAppState([]byte(`{}`), "other-chain")
	assert.True(t, errors.ErrState.Is(err))
}
