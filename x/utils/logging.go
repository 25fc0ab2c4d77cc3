package utils

import (
	"time"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
)

// Logging is a decorator that writes one entry per transaction, tagged
// with the message path (kitties/buy, cash/send, ...) and the time spent.
// Failed transactions also carry the ABCI code they are reported with.
type Logging struct{}

var _ cattery.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx, next cattery.Checker) (*cattery.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, msgPath(tx), resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx cattery.Context, store cattery.KVStore, tx cattery.Tx, next cattery.Deliverer) (*cattery.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, msgPath(tx), resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx cattery.Context, start time.Time, path, msg string, err error, lowPrio bool) {
	delta := time.Now().Sub(start)
	logger := cattery.GetLogger(ctx).With("path", path, "duration", delta/time.Microsecond)

	// An empty message is still logged, the entry carries path and timing.
	if err != nil {
		code, _ := errors.ABCIInfo(err, false)
		logger.With("code", code, "err", err).Error(msg)
		return
	}
	if lowPrio {
		logger.Debug(msg)
	} else {
		logger.Info(msg)
	}
}

// msgPath is cattery.GetPath that tolerates a nil transaction.
func msgPath(tx cattery.Tx) string {
	if tx == nil {
		return "(missing)"
	}
	return cattery.GetPath(tx)
}
