package catterytest

import "github.com/iov-one/cattery"

// Decorator is a mock implementation of the cattery.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted and the path of the passing message is
// recorded, so a test can tell which kitty operations reached the
// decorator. Regardless of the method call result the counter is
// incremented.
type Decorator struct {
	paths []string

	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ cattery.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx, next cattery.Checker) (*cattery.CheckResult, error) {
	d.checkCall++
	d.record(tx)

	if d.CheckErr != nil {
		return &cattery.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx, next cattery.Deliverer) (*cattery.DeliverResult, error) {
	d.deliverCall++
	d.record(tx)

	if d.DeliverErr != nil {
		return &cattery.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) record(tx cattery.Tx) {
	if tx == nil {
		d.paths = append(d.paths, "")
		return
	}
	d.paths = append(d.paths, cattery.GetPath(tx))
}

// Paths returns the message path of every transaction seen, in call order.
// A nil transaction is recorded as an empty path.
func (d *Decorator) Paths() []string {
	return d.paths
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that passes every call through d before h.
func Decorate(h cattery.Handler, d cattery.Decorator) cattery.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn cattery.Handler
	dc cattery.Decorator
}

var _ cattery.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
