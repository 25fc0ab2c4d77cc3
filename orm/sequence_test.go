package orm

import (
	"bytes"
	"math"
	"testing"

	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := map[string]struct {
		bucket     string
		name       string
		increments int
	}{
		"fresh counter":          {"kitty", "id", 22},
		"second name in bucket":  {"kitty", "other", 11},
		"same name other bucket": {"audit", "id", 77},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			orig, err := db.Get(s.Key())
			require.NoError(t, err)

			for i := 0; i < tc.increments; i++ {
				val, err := s.Next(db)
				require.NoError(t, err)
				assert.Equal(t, uint64(i), val)
			}

			cur, err := s.Current(db)
			require.NoError(t, err)
			assert.Equal(t, uint64(tc.increments), cur)

			// make sure final value is bigger than original value
			// if we use the raw bytes to index stuff
			last, err := db.Get(s.Key())
			require.NoError(t, err)
			assert.Equal(t, 1, bytes.Compare(last, orig))
		})
	}
}

func TestSequenceKey(t *testing.T) {
	s := NewSequence("kitty", "id")
	assert.Equal(t, []byte("_s.kitty:id"), s.Key())
}

func TestSequenceOverflow(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("kitty", "id")

	require.NoError(t, s.Set(db, math.MaxUint64-1))
	val, err := s.Next(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64-1), val)

	_, err = s.Next(db)
	require.True(t, errors.ErrOverflow.Is(err), "unexpected error: %v", err)

	// state is not modified by a failed call
	cur, err := s.Current(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), cur)
}

func TestDecodeSequence(t *testing.T) {
	val, err := DecodeSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), val)

	val, err = DecodeSequence(EncodeSequence(1234))
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), val)

	_, err = DecodeSequence([]byte{1, 2})
	assert.True(t, errors.ErrState.Is(err))
}
