package catterytest

import "github.com/iov-one/cattery"

// Handler is a mock implementation of the cattery.Handler interface.
//
// Each method call is counted and returns the preset result.
type Handler struct {
	checkCall   int
	CheckResult cattery.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult cattery.DeliverResult
	DeliverErr    error
}

var _ cattery.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes the key/value pair to the store and then returns
// Err. Use it to test that a failing handler leaves no writes behind.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ cattery.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &cattery.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(ctx cattery.Context, db cattery.KVStore, tx cattery.Tx) (*cattery.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &cattery.DeliverResult{}, h.Err
}
