/*
Package random provides replay-deterministic seeds.

A seed must be unknown before the block is produced, but every node
replaying the block must derive exactly the same value. The host supplies
the entropy as the block hash, extensions only ever see the Source
interface.
*/
package random

import (
	"encoding/binary"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"golang.org/x/crypto/blake2b"
)

// Source returns seed material for the given subject. Different subjects
// produce unrelated seeds within the same transaction.
type Source interface {
	Seed(ctx cattery.Context, subject []byte) ([]byte, error)
}

// BlockSource derives the seed from the hash of the block being processed
// and the position of the transaction within that block.
type BlockSource struct{}

var _ Source = BlockSource{}

// Seed returns blake2b-256(blockHash || txIndex || subject).
func (BlockSource) Seed(ctx cattery.Context, subject []byte) ([]byte, error) {
	hash, ok := cattery.GetBlockHash(ctx)
	if !ok || len(hash) == 0 {
		return nil, errors.Wrap(errors.ErrState, "block hash not in context")
	}
	index, _ := cattery.GetTxIndex(ctx)

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)
	h.Write(hash)
	h.Write(idx[:])
	h.Write(subject)
	return h.Sum(nil), nil
}

// FixedSource always returns the same seed, whatever the subject.
// Use it in tests and tools where reproducible output matters more
// than unpredictability.
type FixedSource []byte

var _ Source = FixedSource(nil)

// Seed returns a copy of the fixed seed.
func (f FixedSource) Seed(cattery.Context, []byte) ([]byte, error) {
	return append([]byte(nil), f...), nil
}
