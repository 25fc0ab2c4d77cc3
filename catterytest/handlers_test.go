package catterytest

import (
	"context"
	"reflect"
	"testing"

	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/store"
)

func TestDecoratedHandler(t *testing.T) {
	h := &Handler{DeliverErr: errors.ErrNotFound}
	d := &Decorator{CheckErr: errors.ErrState}
	handler := Decorate(h, d)

	db := store.MemStore()
	ctx := context.Background()

	if _, err := handler.Check(ctx, db, &Tx{}); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected check error: %v", err)
	}
	if h.CheckCallCount() != 0 {
		t.Fatal("decorator failure must not call the handler")
	}
	if _, err := handler.Deliver(ctx, db, &Tx{}); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected deliver error: %v", err)
	}
	if h.DeliverCallCount() != 1 || d.DeliverCallCount() != 1 {
		t.Fatal("deliver must pass through the decorator to the handler")
	}
	if d.CallCount() != 2 || h.CallCount() != 1 {
		t.Fatalf("unexpected call counts: %d, %d", d.CallCount(), h.CallCount())
	}
}

func TestDecoratorRecordsPaths(t *testing.T) {
	d := &Decorator{DeliverErr: errors.ErrState}
	handler := Decorate(&Handler{}, d)

	db := store.MemStore()
	ctx := context.Background()

	buy := &Tx{Msg: &Msg{RoutePath: "kitties/buy"}}
	breed := &Tx{Msg: &Msg{RoutePath: "kitties/breed"}}
	if _, err := handler.Check(ctx, db, buy); err != nil {
		t.Fatalf("cannot check: %s", err)
	}
	if _, err := handler.Deliver(ctx, db, breed); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected deliver error: %v", err)
	}
	if _, err := handler.Check(ctx, db, nil); err != nil {
		t.Fatalf("cannot check: %s", err)
	}

	want := []string{"kitties/buy", "kitties/breed", ""}
	if got := d.Paths(); !reflect.DeepEqual(want, got) {
		t.Fatalf("want %q, got %q", want, got)
	}
}
