package catterytest

import (
	"context"
	"reflect"
	"testing"

	"github.com/iov-one/cattery"
)

func TestAuthNoSigners(t *testing.T) {
	var a Auth

	if got := a.GetSigners(nil); got != nil {
		t.Fatalf("unexpected signers: %+v", got)
	}
	if a.HasAddress(nil, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}

func TestAuthUsingSignerAndSigners(t *testing.T) {
	addrs := []cattery.Address{
		NewAddress(),
		NewAddress(),
		NewAddress(),
	}

	a := Auth{
		Signer:  addrs[0],
		Signers: addrs[1:],
	}

	if got := a.GetSigners(nil); !reflect.DeepEqual(got, addrs) {
		for i, c := range got {
			t.Logf("signer %d: %s", i, c)
		}
		t.Fatalf("unexpected signers")
	}

	for i, addr := range addrs {
		if !a.HasAddress(nil, addr) {
			t.Errorf("signer %d (%s) address should be present", i, addr)
		}
	}
	if a.HasAddress(nil, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}

func TestCtxAuth(t *testing.T) {
	a := CtxAuth{Key: "auth"}
	ctx := context.Background()

	if got := a.GetSigners(ctx); got != nil {
		t.Fatalf("unexpected signers: %+v", got)
	}

	alice := NewAddress()
	ctx = a.SetSigners(ctx, alice)
	if !a.HasAddress(ctx, alice) {
		t.Fatal("signer not found")
	}
	if a.HasAddress(ctx, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}
