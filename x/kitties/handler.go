package kitties

import (
	"strconv"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
	"github.com/iov-one/cattery/x/auth"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// TagKitty is the tag key attached to every delivered kitty operation.
const TagKitty = "kitty"

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r cattery.Registry, authn auth.Authenticator, ctrl Controller) {
	r.Handle(pathCreateMsg, CreateHandler{authn, ctrl})
	r.Handle(pathSetPriceMsg, SetPriceHandler{authn, ctrl})
	r.Handle(pathTransferMsg, TransferHandler{authn, ctrl})
	r.Handle(pathBuyMsg, BuyHandler{authn, ctrl})
	r.Handle(pathBreedMsg, BreedHandler{authn, ctrl})
}

// CreateHandler mints a kitty for the main signer.
type CreateHandler struct {
	auth auth.Authenticator
	ctrl Controller
}

var _ cattery.Handler = CreateHandler{}

// Check verifies the request is signed and well formed.
func (h CreateHandler) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &cattery.CheckResult{}, nil
}

// Deliver mints the kitty and returns its id as data.
func (h CreateHandler) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Mint(ctx, db, owner, nil, nil)
	if err != nil {
		return nil, err
	}
	return result(id), nil
}

func (h CreateHandler) validate(ctx cattery.Context, tx cattery.Tx) (cattery.Address, error) {
	var msg CreateMsg
	if err := cattery.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return auth.MainSigner(ctx, h.auth)
}

// SetPriceHandler lists and delists kitties.
type SetPriceHandler struct {
	auth auth.Authenticator
	ctrl Controller
}

var _ cattery.Handler = SetPriceHandler{}

// Check verifies the request is signed and well formed.
func (h SetPriceHandler) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &cattery.CheckResult{}, nil
}

// Deliver updates the price.
func (h SetPriceHandler) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetPrice(ctx, db, caller, msg.KittyID, msg.Ask()); err != nil {
		return nil, err
	}
	return result(msg.KittyID), nil
}

func (h SetPriceHandler) validate(ctx cattery.Context, tx cattery.Tx) (*SetPriceMsg, cattery.Address, error) {
	var msg SetPriceMsg
	if err := cattery.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := auth.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// TransferHandler gives kitties away.
type TransferHandler struct {
	auth auth.Authenticator
	ctrl Controller
}

var _ cattery.Handler = TransferHandler{}

// Check verifies the request is signed and well formed.
func (h TransferHandler) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &cattery.CheckResult{}, nil
}

// Deliver moves the kitty to the recipient.
func (h TransferHandler) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(ctx, db, caller, msg.KittyID, msg.To); err != nil {
		return nil, err
	}
	return result(msg.KittyID), nil
}

func (h TransferHandler) validate(ctx cattery.Context, tx cattery.Tx) (*TransferMsg, cattery.Address, error) {
	var msg TransferMsg
	if err := cattery.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := auth.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// BuyHandler completes sales.
type BuyHandler struct {
	auth auth.Authenticator
	ctrl Controller
}

var _ cattery.Handler = BuyHandler{}

// Check verifies the request is signed and well formed.
func (h BuyHandler) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &cattery.CheckResult{}, nil
}

// Deliver pays the seller and hands the kitty to the signer. The paid
// amount is returned as data.
func (h BuyHandler) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	paid, err := h.ctrl.Buy(ctx, db, caller, msg.KittyID, msg.Bid)
	if err != nil {
		return nil, err
	}
	res := result(msg.KittyID)
	res.Data = orm.EncodeSequence(paid)
	return res, nil
}

func (h BuyHandler) validate(ctx cattery.Context, tx cattery.Tx) (*BuyMsg, cattery.Address, error) {
	var msg BuyMsg
	if err := cattery.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := auth.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// BreedHandler breeds kitties of the signer.
type BreedHandler struct {
	auth auth.Authenticator
	ctrl Controller
}

var _ cattery.Handler = BreedHandler{}

// Check verifies the request is signed and well formed.
func (h BreedHandler) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &cattery.CheckResult{}, nil
}

// Deliver creates the child and returns its id as data.
func (h BreedHandler) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Breed(ctx, db, caller, msg.Parent1, msg.Parent2)
	if err != nil {
		return nil, err
	}
	return result(id), nil
}

func (h BreedHandler) validate(ctx cattery.Context, tx cattery.Tx) (*BreedMsg, cattery.Address, error) {
	var msg BreedMsg
	if err := cattery.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := auth.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// result returns the kitty id as data and tags the transaction with it.
func result(id uint64) *cattery.DeliverResult {
	return &cattery.DeliverResult{
		Data: orm.EncodeSequence(id),
		Tags: []cmn.KVPair{
			{Key: []byte(TagKitty), Value: []byte(strconv.FormatUint(id, 10))},
		},
	}
}
