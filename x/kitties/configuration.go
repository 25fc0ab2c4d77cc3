package kitties

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/gconf"
	"github.com/iov-one/cattery/orm"
)

// ConfigPkg is the name configuration is stored and read under.
const ConfigPkg = "kitties"

// Configuration holds the consensus constants of the extension.
type Configuration struct {
	// MaxOwned is the most kitties a single account may hold.
	MaxOwned uint32 `json:"max_owned"`
	// ReservationFee is reserved from the creator of every kitty.
	ReservationFee uint64 `json:"reservation_fee"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate requires accounts to be able to own at least one kitty.
func (c *Configuration) Validate() error {
	if c.MaxOwned == 0 {
		return errors.Wrap(errors.ErrState, "max owned must be positive")
	}
	return nil
}

// Marshal encodes the configuration using protobuf wire format.
func (c *Configuration) Marshal() ([]byte, error) {
	w := orm.NewWriter()
	w.Uint64(1, uint64(c.MaxOwned))
	w.Uint64(2, c.ReservationFee)
	return w.Result()
}

// Unmarshal decodes a configuration encoded by Marshal.
func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return orm.DecodeFields(raw, func(f orm.Field) error {
		switch f.Number {
		case 1:
			v, err := f.Uint64()
			if err != nil {
				return err
			}
			if v > uint64(^uint32(0)) {
				return errors.Wrap(errors.ErrModel, "max owned out of range")
			}
			c.MaxOwned = uint32(v)
		case 2:
			v, err := f.Uint64()
			if err != nil {
				return err
			}
			c.ReservationFee = v
		}
		return nil
	})
}

// ReadConfig returns the configuration declared in the genesis options.
func ReadConfig(opts cattery.Options) (Configuration, error) {
	var conf Configuration
	err := gconf.ReadConfig(opts, ConfigPkg, &conf)
	return conf, err
}

// LoadConfig returns the configuration persisted in the store.
func LoadConfig(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	err := gconf.Load(db, ConfigPkg, &conf)
	return conf, err
}
