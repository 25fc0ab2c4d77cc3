package orm

import (
	"testing"

	"github.com/iov-one/cattery/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterOmitsDefaults(t *testing.T) {
	w := NewWriter()
	w.Uint64(1, 0)
	w.Bytes(2, nil)
	raw, err := w.Result()
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestWriterEncoding(t *testing.T) {
	w := NewWriter()
	w.Uint64(1, 150)
	w.Bytes(2, []byte("testing"))
	raw, err := w.Result()
	require.NoError(t, err)

	// reference encoding from the protobuf documentation
	want := []byte{0x08, 0x96, 0x01, 0x12, 0x07, 't', 'e', 's', 't', 'i', 'n', 'g'}
	assert.Equal(t, want, raw)
}

func TestPresentZeroIsKept(t *testing.T) {
	zero := uint64(0)
	n := note{Count: &zero, Text: []byte("x")}
	raw, err := n.Marshal()
	require.NoError(t, err)

	var got note
	require.NoError(t, got.Unmarshal(raw))
	require.NotNil(t, got.Count)
	assert.Equal(t, uint64(0), *got.Count)

	n.Count = nil
	raw, err = n.Marshal()
	require.NoError(t, err)
	require.NoError(t, got.Unmarshal(raw))
	assert.Nil(t, got.Count)
}

func TestDecodeFieldsErrors(t *testing.T) {
	cases := map[string][]byte{
		"truncated varint":       {0x08, 0x96},
		"length beyond buffer":   {0x12, 0x07, 't'},
		"field number zero":      {0x00, 0x01},
		"unsupported wire type":  {0x0b},
		"truncated fixed64":      {0x09, 0x01},
		"truncated length value": {0x12},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			err := DecodeFields(raw, func(Field) error { return nil })
			assert.True(t, errors.ErrModel.Is(err), "unexpected error: %v", err)
		})
	}
}

func TestDecodeFieldsSkipsUnknown(t *testing.T) {
	w := NewWriter()
	w.Bytes(1, []byte("x"))
	w.Uint64(9, 42)
	raw, err := w.Result()
	require.NoError(t, err)

	var got note
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, []byte("x"), got.Text)
}

func TestFieldTypeMismatch(t *testing.T) {
	w := NewWriter()
	w.Uint64(1, 7)
	raw, err := w.Result()
	require.NoError(t, err)

	var got note
	err = got.Unmarshal(raw)
	assert.True(t, errors.ErrModel.Is(err), "unexpected error: %v", err)
}
