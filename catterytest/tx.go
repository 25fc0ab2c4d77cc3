package catterytest

import "github.com/iov-one/cattery"

// Tx represents a single message that is to be processed within a
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg cattery.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ cattery.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (cattery.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a request processed within a single transaction.
type Msg struct {
	// RoutePath is returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the validation.
	Err error
}

var _ cattery.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
