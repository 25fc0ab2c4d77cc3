package auth

import (
	"github.com/iov-one/cattery"
)

// RegisterQuery will register the account state as "/auth". The query
// data is the raw address, the result holds the next expected sequence.
func RegisterQuery(qr cattery.QueryRouter) {
	qr.Register("/auth", cattery.QueryHandlerFunc(queryAccount))
}

// AccountInfo is the query result of "/auth".
type AccountInfo struct {
	Address  cattery.Address `json:"address"`
	Sequence int64           `json:"sequence"`
}

func queryAccount(db cattery.ReadOnlyKVStore, data []byte) (interface{}, error) {
	addr := cattery.Address(data)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	seq, err := NextSequence(db, addr)
	if err != nil {
		return nil, err
	}
	return AccountInfo{Address: addr, Sequence: seq}, nil
}
