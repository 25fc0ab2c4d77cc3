package cash

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/gconf"
	"github.com/iov-one/cattery/orm"
)

// ConfigPkg is the name configuration is stored and read under.
const ConfigPkg = "cash"

// Configuration holds the consensus constants of the currency.
type Configuration struct {
	// MinimalBalance is the least free balance a payer must keep when
	// transferring with KeepAlive.
	MinimalBalance uint64 `json:"minimal_balance"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate accepts any minimal balance, zero disables the floor.
func (c *Configuration) Validate() error {
	return nil
}

// Marshal encodes the configuration using protobuf wire format.
func (c *Configuration) Marshal() ([]byte, error) {
	w := orm.NewWriter()
	w.Uint64(1, c.MinimalBalance)
	return w.Result()
}

// Unmarshal decodes a configuration encoded by Marshal.
func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return orm.DecodeFields(raw, func(f orm.Field) error {
		var err error
		if f.Number == 1 {
			c.MinimalBalance, err = f.Uint64()
		}
		return err
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
