package audit

import (
	"context"
	"testing"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/catterytest"
	"github.com/iov-one/cattery/catterytest/assert"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
	"github.com/iov-one/cattery/store"
)

func TestLogAppendRange(t *testing.T) {
	db := store.MemStore()
	ctx := cattery.WithHeight(context.Background(), 12)
	alice := catterytest.SeqAddr(1)
	bob := catterytest.SeqAddr(2)
	log := NewLog()

	events := []Event{
		{Kind: KindCreated, Account: alice, AssetID: 0, Amount: 1000},
		{Kind: KindPriceSet, Account: alice, AssetID: 0, Amount: 10, Listed: true},
		{Kind: KindBought, Account: bob, Counterparty: alice, AssetID: 0, Amount: 11, Released: 1000},
		{Kind: KindBred, Height: 3, Account: bob, AssetID: 2, Parents: []uint64{0, 1}},
	}
	for i, e := range events {
		seq, err := log.Append(ctx, db, e)
		assert.Nil(t, err)
		assert.Equal(t, uint64(i), seq)
	}

	n, err := log.Len(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(4), n)

	all, err := log.Range(db, 0, 10)
	assert.Nil(t, err)
	assert.Equal(t, 4, len(all))
	for i, r := range all {
		want := events[i]
		if want.Height == 0 {
			want.Height = 12
		}
		assert.Equal(t, uint64(i), r.Seq)
		assert.Equal(t, want, r.Event)
	}

	page, err := log.Range(db, 1, 2)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(page))
	assert.Equal(t, KindPriceSet, page[0].Event.Kind)
	assert.Equal(t, KindBought, page[1].Event.Kind)

	none, err := log.Range(db, 4, 10)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(none))
}

func TestEventValidation(t *testing.T) {
	alice := catterytest.SeqAddr(1)

	cases := map[string]struct {
		event   Event
		wantErr *errors.Error
	}{
		"valid": {
			event: Event{Kind: KindTransferred, Account: alice, Counterparty: catterytest.SeqAddr(2)},
		},
		"unknown kind": {
			event:   Event{Kind: "burned", Account: alice},
			wantErr: errors.ErrModel,
		},
		"missing account": {
			event:   Event{Kind: KindCreated},
			wantErr: errors.ErrEmpty,
		},
		"breeding with one parent": {
			event:   Event{Kind: KindBred, Account: alice, Parents: []uint64{1}},
			wantErr: errors.ErrModel,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.event.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	db := store.MemStore()
	log := NewLog()
	for i := 0; i < 3; i++ {
		_, err := log.Append(context.Background(), db, Event{Kind: KindCreated, Account: catterytest.SeqAddr(1), AssetID: uint64(i)})
		assert.Nil(t, err)
	}

	qr := cattery.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/audit")

	res, err := h.Query(db, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(res.([]Record)))

	res, err = h.Query(db, orm.EncodeSequence(2))
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), res.([]Record)[0].Event.AssetID)

	_, err = h.Query(db, []byte{1})
	assert.IsErr(t, errors.ErrInput, err)
}
