package kitties

import (
	"testing"

	"github.com/iov-one/cattery/catterytest"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnershipIndex(t *testing.T) {
	db := store.MemStore()
	owner := catterytest.SeqAddr(1)
	ix := NewOwnershipIndex(3)

	ids, err := ix.List(db, owner)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []uint64{4, 7, 9} {
		require.NoError(t, ix.Add(db, owner, id))
	}
	full, err := ix.Full(db, owner)
	require.NoError(t, err)
	assert.True(t, full)
	assert.True(t, ErrCapacityExceeded.Is(ix.Add(db, owner, 11)))

	// the last element takes the place of the removed one
	require.NoError(t, ix.Remove(db, owner, 4))
	ids, err = ix.List(db, owner)
	require.NoError(t, err)
	assert.Equal(t, []uint64{9, 7}, ids)

	assert.True(t, errors.ErrNotFound.Is(ix.Remove(db, owner, 4)))
	assert.True(t, errors.ErrDuplicate.Is(ix.Add(db, owner, 7)))

	require.NoError(t, ix.Remove(db, owner, 9))
	require.NoError(t, ix.Remove(db, owner, 7))
	ids, err = ix.List(db, owner)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAssetStore(t *testing.T) {
	db := store.MemStore()
	s := NewAssetStore()

	_, err := s.Get(db, 0)
	assert.True(t, errors.ErrNotFound.Is(err))

	for want := uint64(0); want < 3; want++ {
		id, err := s.NextID(db)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	n, err := s.Count(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)

	k := &Kitty{ID: 2, Gender: Female, Owner: catterytest.SeqAddr(1)}
	require.NoError(t, s.Put(db, k))
	got, err := s.Get(db, 2)
	require.NoError(t, err)
	assert.Equal(t, k, got)

	assert.True(t, errors.ErrEmpty.Is(s.Put(db, &Kitty{ID: 1})))
}
