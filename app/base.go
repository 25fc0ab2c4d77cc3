package app

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx, CheckTx, and BeginBlock
// handlers to the storage and query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder cattery.TxDecoder
	handler cattery.Handler
	debug   bool

	// txIndex is the position of the next delivered transaction
	// within the current block
	txIndex uint32
}

var _ abci.Application = (*BaseApp)(nil)

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder cattery.TxDecoder,
	handler cattery.Handler,
	debug bool,
) *BaseApp {
	return &BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b *BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	index := b.txIndex
	b.txIndex++

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return cattery.DeliverTxError(err, b.debug)
	}

	ctx := cattery.WithTxIndex(b.BlockContext(), index)
	ctx = cattery.WithLogInfo(ctx,
		"call", "deliver_tx",
		"path", cattery.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return cattery.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b *BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return cattery.CheckTxError(err, b.debug)
	}

	ctx := cattery.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", cattery.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return cattery.CheckOrError(res, err, b.debug)
}

// BeginBlock - ABCI
func (b *BaseApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	b.txIndex = 0
	return b.StoreApp.BeginBlock(req)
}

// loadTx calls the decoder, and capture any panics
func (b *BaseApp) loadTx(txBytes []byte) (tx cattery.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
