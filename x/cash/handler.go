package cash

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/x/auth"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r cattery.Registry, authn auth.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(authn, control))
}

// RegisterQuery will register the balances as "/cash". The query data is
// the raw address.
func RegisterQuery(qr cattery.QueryRouter) {
	bucket := NewBucket()
	qr.Register("/cash", cattery.QueryHandlerFunc(func(db cattery.ReadOnlyKVStore, data []byte) (interface{}, error) {
		addr := cattery.Address(data)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return bucket.Get(db, addr)
	}))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    auth.Authenticator
	control Controller
}

var _ cattery.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(authn auth.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    authn,
		control: control,
	}
}

// Check just verifies it is properly formed and signed by the source.
func (h SendHandler) Check(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &cattery.CheckResult{}, nil
}

// Deliver moves the funds from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(store, msg.Source, msg.Destination, msg.Amount, KeepAlive); err != nil {
		return nil, err
	}
	cattery.GetLogger(ctx).Info("funds sent",
		"source", msg.Source, "destination", msg.Destination, "amount", msg.Amount)
	return &cattery.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx cattery.Context, tx cattery.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := cattery.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthenticated, "source signature missing")
	}
	return &msg, nil
}
