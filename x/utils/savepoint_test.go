package utils

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/catterytest"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		save    cattery.Decorator
		handler cattery.Handler
		check   bool // whether to call Check or Deliver
		isError bool // true iff we expect errors

		writen  [][]byte // keys to find
		missing [][]byte // keys not to find
	}{
		"savepoint disactivated, returns error, both writen": {
			save:    NewSavepoint(),
			handler: &catterytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			writen:  [][]byte{ok, nk},
		},
		"savepoint activated, returns error, one writen": {
			save:    NewSavepoint().OnCheck(),
			handler: &catterytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			writen:  [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated for deliver, returns error, one writen": {
			save:    NewSavepoint().OnDeliver(),
			handler: &catterytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			writen:  [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double-activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &catterytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			writen:  [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint check doesn't affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &catterytest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			writen:  [][]byte{ok, nk},
		},
		"don't rollback when success returned": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &catterytest.WriteHandler{Key: nk, Value: nv},
			writen:  [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}

			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.writen {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}

func TestAtomic(t *testing.T) {
	kv := store.MemStore()

	err := Atomic(kv, func(db cattery.KVStore) error {
		if err := db.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}
		return errors.ErrState
	})
	assert.True(t, errors.ErrState.Is(err))
	has, err := kv.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has, "failed function writes must be dropped")

	err = Atomic(kv, func(db cattery.KVStore) error {
		return db.Set([]byte("b"), []byte("2"))
	})
	require.NoError(t, err)
	val, err := kv.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestAtomicRequiresCacheableStore(t *testing.T) {
	err := Atomic(store.EmptyKVStore{}, func(cattery.KVStore) error { return nil })
	assert.True(t, errors.ErrHuman.Is(err))
}

func TestRecovery(t *testing.T) {
	h := &panicHandler{}
	r := NewRecovery()
	_, err := r.Deliver(context.Background(), store.MemStore(), nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = r.Check(context.Background(), store.MemStore(), nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestRecoveryLogsMessagePath(t *testing.T) {
	var buf bytes.Buffer
	ctx := cattery.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &catterytest.Tx{Msg: &catterytest.Msg{RoutePath: "kitties/breed"}}

	_, err := NewRecovery().Deliver(ctx, store.MemStore(), tx, &panicHandler{})
	require.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "deliver")
	assert.Contains(t, buf.String(), "kitties/breed")
	assert.Contains(t, buf.String(), "handler panic")
}

func TestLogging(t *testing.T) {
	cases := map[string]struct {
		handler  *catterytest.Handler
		tx       cattery.Tx
		wantErr  *errors.Error
		wantLogs []string
	}{
		"successful transfer": {
			handler:  &catterytest.Handler{DeliverResult: cattery.DeliverResult{Log: "kitty moved"}},
			tx:       &catterytest.Tx{Msg: &catterytest.Msg{RoutePath: "kitties/transfer"}},
			wantLogs: []string{"kitties/transfer", "kitty moved", "duration"},
		},
		"failed purchase reports the code": {
			handler:  &catterytest.Handler{DeliverErr: errors.Wrap(errors.ErrNotFound, "no such kitty")},
			tx:       &catterytest.Tx{Msg: &catterytest.Msg{RoutePath: "kitties/buy"}},
			wantErr:  errors.ErrNotFound,
			wantLogs: []string{"kitties/buy", "code=3", "no such kitty"},
		},
		"missing transaction": {
			handler:  &catterytest.Handler{},
			wantLogs: []string{"(missing)"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := cattery.WithLogger(context.Background(), log.NewTMLogger(&buf))

			_, err := NewLogging().Deliver(ctx, store.MemStore(), tc.tx, tc.handler)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				assert.NoError(t, err)
			}
			for _, want := range tc.wantLogs {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestActionTagger(t *testing.T) {
	tx := &catterytest.Tx{Msg: &catterytest.Msg{RoutePath: "kitties/buy"}}
	h := &catterytest.Handler{}
	res, err := NewActionTagger().Deliver(context.Background(), store.MemStore(), tx, h)
	require.NoError(t, err)
	require.Len(t, res.Tags, 1)
	assert.Equal(t, []byte(ActionKey), res.Tags[0].Key)
	assert.Equal(t, []byte("kitties/buy"), res.Tags[0].Value)
}

type panicHandler struct{}

func (panicHandler) Check(cattery.Context, cattery.KVStore, cattery.Tx) (*cattery.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(cattery.Context, cattery.KVStore, cattery.Tx) (*cattery.DeliverResult, error) {
	panic("deliver")
}
