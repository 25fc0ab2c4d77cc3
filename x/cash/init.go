package cash

import (
	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/gconf"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use cattery.Address, so address in hex, not base64
type GenesisAccount struct {
	Address cattery.Address `json:"address"`
	Free    uint64          `json:"free"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ cattery.Initializer = Initializer{}

// FromGenesis will persist the configuration and parse initial account
// balances from genesis.
func (Initializer) FromGenesis(opts cattery.Options, db cattery.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, ConfigPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(conf)
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.Issue(db, acct.Address, acct.Free); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
