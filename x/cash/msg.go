package cash

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
)

const (
	pathSendMsg = "cash/send"

	maxMemoSize = 128
)

// SendMsg moves free balance from the signer to the destination, keeping
// the signer's account alive.
type SendMsg struct {
	Source      cattery.Address `json:"source"`
	Destination cattery.Address `json:"destination"`
	Amount      uint64          `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

var _ cattery.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if s.Amount == 0 {
		return errors.Wrap(errors.ErrInput, "amount must be positive")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo longer than %d", maxMemoSize)
	}
	return nil
}
