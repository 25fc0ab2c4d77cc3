package app

import (
	"reflect"

	"github.com/iov-one/cattery"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []cattery.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    auth.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    myapp.NewRouter(),
  )
*/
func ChainDecorators(chain ...cattery.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...cattery.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := append(d.chain[:len(d.chain):len(d.chain)], chain...)
	return Decorators{newChain}
}

// cutoffNil returns the given decorators without the nil values.
func cutoffNil(ds []cattery.Decorator) []cattery.Decorator {
	out := make([]cattery.Decorator, 0, len(ds))
	for _, d := range ds {
		if d == nil {
			continue
		}
		if v := reflect.ValueOf(d); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		out = append(out, d)
	}
	return out
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h cattery.Handler) cattery.Handler {
	// start wrapping the handler from last decorator to first one
	// as the top of the chain is understood to be executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler. Simplified version of a closure.
type step struct {
	d    cattery.Decorator
	next cattery.Handler
}

var _ cattery.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
