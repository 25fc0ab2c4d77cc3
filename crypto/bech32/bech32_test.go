package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/cattery/errors"
)

func TestBench32EncodeDecode(t *testing.T) {
	// bech32  -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tiov" {
		t.Fatalf("unexpected human readable part: %q", hrp)
	}
	if !bytes.Equal(want, payload) {
		t.Logf("want %d", want)
		t.Logf("got  %d", payload)
		t.Fatal("invalid decode")
	}

	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if string(raw) != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestBech32DecodeChecksum(t *testing.T) {
	if _, _, err := Decode(`tiov1w3jhxapdwpshjmr0v9jqymqq4z`); err == nil {
		t.Fatal("corrupted checksum accepted")
	}
}

func TestDecodeHRP(t *testing.T) {
	addr := bytes.Repeat([]byte{0xca}, 20)
	catEnc, err := Encode("cat", addr)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	otherEnc, err := Encode("tiov", addr)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}

	corrupted := append([]byte{}, catEnc...)
	if last := len(corrupted) - 1; corrupted[last] == 'q' {
		corrupted[last] = 'p'
	} else {
		corrupted[last] = 'q'
	}

	cases := map[string]struct {
		raw     string
		wantErr *errors.Error
	}{
		"address prefix":    {raw: string(catEnc)},
		"foreign prefix":    {raw: string(otherEnc), wantErr: errors.ErrInput},
		"corrupted":         {raw: string(corrupted), wantErr: errors.ErrInput},
		"not bech32 at all": {raw: "kitty", wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			payload, err := DecodeHRP(tc.raw, "cat")
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %s, got %+v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("cannot decode: %+v", err)
			}
			if !bytes.Equal(addr, payload) {
				t.Fatalf("want %X, got %X", addr, payload)
			}
		})
	}
}
