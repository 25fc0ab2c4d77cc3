package kitties

import (
	"context"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/gconf"
	"github.com/iov-one/cattery/x/utils"
)

const optKey = "kitties"

// GenesisKitty is a kitty created at bootstrap.
type GenesisKitty struct {
	Owner  cattery.Address `json:"owner"`
	Genome Genome          `json:"genome"`
	Gender Gender          `json:"gender"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ cattery.Initializer = Initializer{}

// FromGenesis persists the configuration and creates the preset kitties
// in the order they are listed. No reservation fee is taken. Any failure
// aborts the whole genesis.
func (Initializer) FromGenesis(opts cattery.Options, db cattery.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, ConfigPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var kitties []GenesisKitty
	if err := opts.ReadOptions(optKey, &kitties); err != nil {
		return err
	}
	ctrl := NewController(conf, nil, nil)
	ctx := cattery.WithHeight(context.Background(), 0)
	return utils.Atomic(db, func(db cattery.KVStore) error {
		for i, k := range kitties {
			if _, err := ctrl.mint(ctx, db, k.Owner, &k.Genome, &k.Gender, false); err != nil {
				return errors.Wrapf(err, "kitty %d", i)
			}
		}
		return nil
	})
}
