package kitties

import (
	"encoding/binary"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/x/random"
	"golang.org/x/crypto/blake2b"
)

// Domain tags separating the seeds of the generated values.
const (
	dnaTag    = "dna"
	genderTag = "gender"
)

// IdentityGenerator produces the genome and gender of new kitties. The
// result is a pure function of the seed and the block height, so replaying
// a block yields the same kitties.
type IdentityGenerator struct {
	src random.Source
}

// NewIdentityGenerator returns a generator drawing seeds from src.
func NewIdentityGenerator(src random.Source) IdentityGenerator {
	return IdentityGenerator{src: src}
}

// Genome returns a fresh genome.
func (g IdentityGenerator) Genome(ctx cattery.Context) (Genome, error) {
	var genome Genome
	d, err := g.digest(ctx, dnaTag)
	if err != nil {
		return genome, err
	}
	copy(genome[:], d)
	return genome, nil
}

// Gender returns a fresh gender, taken from the lowest bit of the first
// byte of the digest.
func (g IdentityGenerator) Gender(ctx cattery.Context) (Gender, error) {
	d, err := g.digest(ctx, genderTag)
	if err != nil {
		return Male, err
	}
	return Gender(d[0] & 1), nil
}

// digest computes blake2b-128(seed || height || tag).
func (g IdentityGenerator) digest(ctx cattery.Context, tag string) ([]byte, error) {
	seed, err := g.src.Seed(ctx, []byte(tag))
	if err != nil {
		return nil, errors.Wrap(err, "random seed")
	}
	height, _ := cattery.GetHeight(ctx)

	h, err := blake2b.New(GenomeSize, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	var hbz [8]byte
	binary.BigEndian.PutUint64(hbz[:], uint64(height))
	h.Write(seed)
	h.Write(hbz[:])
	h.Write([]byte(tag))
	return h.Sum(nil), nil
}

// BreedGenome combines two parent genomes. Every bit of the result comes
// from p1 where the mask bit is set and from p2 otherwise.
func BreedGenome(mask, p1, p2 Genome) Genome {
	var child Genome
	for i := range child {
		child[i] = (mask[i] & p1[i]) | (^mask[i] & p2[i])
	}
	return child
}
