package kitties

import (
	"context"
	"math/rand"
	"testing"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/x/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityGeneratorIsDeterministic(t *testing.T) {
	gen := NewIdentityGenerator(random.FixedSource("seed"))
	at := func(height int64) cattery.Context {
		return cattery.WithHeight(context.Background(), height)
	}

	g1, err := gen.Genome(at(10))
	require.NoError(t, err)
	g2, err := gen.Genome(at(10))
	require.NoError(t, err)
	assert.Equal(t, g1, g2)

	g3, err := gen.Genome(at(11))
	require.NoError(t, err)
	assert.NotEqual(t, g1, g3)

	other, err := NewIdentityGenerator(random.FixedSource("other seed")).Genome(at(10))
	require.NoError(t, err)
	assert.NotEqual(t, g1, other)

	gender, err := gen.Gender(at(10))
	require.NoError(t, err)
	again, err := gen.Gender(at(10))
	require.NoError(t, err)
	assert.Equal(t, gender, again)
	assert.NoError(t, gender.Validate())
}

func TestIdentityGeneratorWithBlockSource(t *testing.T) {
	gen := NewIdentityGenerator(random.BlockSource{})

	_, err := gen.Genome(context.Background())
	assert.Error(t, err)

	ctx := cattery.WithBlockHash(context.Background(), []byte("some block"))
	first, err := gen.Genome(cattery.WithTxIndex(ctx, 0))
	require.NoError(t, err)
	second, err := gen.Genome(cattery.WithTxIndex(ctx, 1))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestBreedGenomeTakesEveryBitFromAParent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	randGenome := func() Genome {
		var g Genome
		r.Read(g[:])
		return g
	}

	for i := 0; i < 100; i++ {
		mask, p1, p2 := randGenome(), randGenome(), randGenome()
		child := BreedGenome(mask, p1, p2)
		for b := range child {
			// bits where the parents agree must be kept
			agree := ^(p1[b] ^ p2[b])
			if child[b]&agree != p1[b]&agree {
				t.Fatalf("byte %d: %08b is not a blend of %08b and %08b", b, child[b], p1[b], p2[b])
			}
			if child[b]&mask[b] != p1[b]&mask[b] {
				t.Fatalf("byte %d: masked bits not taken from first parent", b)
			}
			if child[b]&^mask[b] != p2[b]&^mask[b] {
				t.Fatalf("byte %d: unmasked bits not taken from second parent", b)
			}
		}
	}

	var zero, ones Genome
	for i := range ones {
		ones[i] = 0xff
	}
	assert.Equal(t, ones, BreedGenome(ones, ones, zero))
	assert.Equal(t, zero, BreedGenome(zero, ones, zero))
}
