package kitties

import (
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/orm"
)

// GenomeSize is the length of every genome.
const GenomeSize = 16

// Genome is the identity payload of a kitty.
type Genome [GenomeSize]byte

// String returns the hex representation.
func (g Genome) String() string {
	return hex.EncodeToString(g[:])
}

// MarshalJSON encodes the genome as a hex string.
func (g Genome) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes a hex encoded genome.
func (g *Genome) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "genome must be a string")
	}
	b, err := hex.DecodeString(enc)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode genome hex")
	}
	if len(b) != GenomeSize {
		return errors.Wrapf(errors.ErrInput, "genome of %d bytes", len(b))
	}
	copy(g[:], b)
	return nil
}

// Gender of a kitty, fixed when it is created.
type Gender uint8

// Known genders.
const (
	Male Gender = iota
	Female
)

// Validate returns an error for an unknown gender.
func (g Gender) Validate() error {
	if g != Male && g != Female {
		return errors.Wrapf(errors.ErrInput, "unknown gender %d", g)
	}
	return nil
}

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the gender as its name.
func (g Gender) MarshalJSON() ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(g.String())
}

// UnmarshalJSON accepts "male" or "female".
func (g *Gender) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "gender must be a string")
	}
	switch enc {
	case "male":
		*g = Male
	case "female":
		*g = Female
	default:
		return errors.Wrapf(errors.ErrInput, "unknown gender %q", enc)
	}
	return nil
}

// Kitty is a single collectible asset.
type Kitty struct {
	ID     uint64 `json:"id"`
	Genome Genome `json:"genome"`
	Gender Gender `json:"gender"`
	// Price is the ask of an open sale, nil when not for sale.
	Price *uint64         `json:"price,omitempty"`
	Owner cattery.Address `json:"owner"`
}

var _ orm.Model = (*Kitty)(nil)

// Validate ensures the kitty is complete.
func (k *Kitty) Validate() error {
	if err := k.Gender.Validate(); err != nil {
		return errors.Wrap(err, "gender")
	}
	if err := k.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// ForSale returns true if the kitty has an open sale.
func (k *Kitty) ForSale() bool {
	return k.Price != nil
}

// Marshal encodes the model using protobuf wire format. The price field
// is only present when the kitty is for sale, so a zero price stays
// distinct from no sale.
func (k *Kitty) Marshal() ([]byte, error) {
	w := orm.NewWriter()
	w.Uint64(1, k.ID)
	w.Bytes(2, k.Genome[:])
	w.Uint64(3, uint64(k.Gender))
	w.Bytes(4, k.Owner)
	if k.Price != nil {
		w.PresentUint64(5, *k.Price)
	}
	return w.Result()
}

// Unmarshal decodes a model encoded by Marshal.
func (k *Kitty) Unmarshal(raw []byte) error {
	*k = Kitty{}
	return orm.DecodeFields(raw, func(f orm.Field) error {
		switch f.Number {
		case 1:
			v, err := f.Uint64()
			if err != nil {
				return err
			}
			k.ID = v
		case 2:
			b, err := f.Bytes()
			if err != nil {
				return err
			}
			if len(b) != GenomeSize {
				return errors.Wrapf(errors.ErrModel, "genome of %d bytes", len(b))
			}
			copy(k.Genome[:], b)
		case 3:
			v, err := f.Uint64()
			if err != nil {
				return err
			}
			k.Gender = Gender(v)
		case 4:
			b, err := f.Bytes()
			if err != nil {
				return err
			}
			k.Owner = b
		case 5:
			v, err := f.Uint64()
			if err != nil {
				return err
			}
			k.Price = &v
		}
		return nil
	})
}

// OwnedList holds the ids of all kitties of one account.
type OwnedList struct {
	IDs []uint64 `json:"ids"`
}

var _ orm.Model = (*OwnedList)(nil)

// Validate ensures no id is listed twice.
func (o *OwnedList) Validate() error {
	seen := make(map[uint64]struct{}, len(o.IDs))
	for _, id := range o.IDs {
		if _, ok := seen[id]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "kitty %d", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Marshal encodes the list as a repeated varint field.
func (o *OwnedList) Marshal() ([]byte, error) {
	w := orm.NewWriter()
	for _, id := range o.IDs {
		w.PresentUint64(1, id)
	}
	return w.Result()
}

// Unmarshal decodes a list encoded by Marshal.
func (o *OwnedList) Unmarshal(raw []byte) error {
	*o = OwnedList{}
	return orm.DecodeFields(raw, func(f orm.Field) error {
		if f.Number != 1 {
			return nil
		}
		v, err := f.Uint64()
		if err != nil {
			return err
		}
		o.IDs = append(o.IDs, v)
		return nil
	})
}
