package utils

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
)

// Recovery is a decorator that turns a panic in any handler below it into
// an errors.ErrPanic result. The block keeps being processed and the panic
// is logged with the path of the message that caused it.
type Recovery struct{}

var _ cattery.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx, next cattery.Checker) (_ *cattery.CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked(ctx, tx, p)
		}
	}()
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx, next cattery.Deliverer) (_ *cattery.DeliverResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked(ctx, tx, p)
		}
	}()
	return next.Deliver(ctx, store, tx)
}

func panicked(ctx cattery.Context, tx cattery.Tx, p interface{}) error {
	err := errors.Wrapf(errors.ErrPanic, "%v", p)
	cattery.GetLogger(ctx).Error("handler panic", "path", msgPath(tx), "panic", p)
	return err
}
