package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/commands/server"
	"github.com/iov-one/cattery/crypto"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/x/cash"
	"github.com/iov-one/cattery/x/kitties"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Development defaults written by GenInitOptions.
const (
	DefaultBalance        = 1000000000
	DefaultMaxOwned       = 100
	DefaultReservationFee = 1000
	DefaultMinimalBalance = 500
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// The first argument is the address of the account. If missing, a new
// key is generated and its private part printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr cattery.Address
	if len(args) > 0 {
		var err error
		if addr, err = cattery.ParseAddress(args[0]); err != nil {
			return nil, errors.Wrap(err, "account address")
		}
	} else {
		key := crypto.GenPrivKeyEd25519()
		addr = key.PublicKey().Address()
		fmt.Printf("generated key for %s: %X\n", addr, key[:])
	}

	type dict map[string]interface{}
	return json.Marshal(dict{
		"cash": []cash.GenesisAccount{
			{Address: addr, Free: DefaultBalance},
		},
		"conf": dict{
			cash.ConfigPkg: cash.Configuration{
				MinimalBalance: DefaultMinimalBalance,
			},
			kitties.ConfigPkg: kitties.Configuration{
				MaxOwned:       DefaultMaxOwned,
				ReservationFee: DefaultReservationFee,
			},
		},
	})
}

// GenerateApp is used to create the application for the start command.
//
// The controllers are configured from the state saved by the genesis.
// Before the genesis was loaded the configuration is read from the
// genesis file in the home directory.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "abci.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := kv.LoadLatestVersion(); err != nil {
		return nil, err
	}
	confs, err := LoadConfigs(kv.CacheWrap())
	if errors.ErrNotFound.Is(err) {
		confs, err = genesisConfigs(filepath.Join(home, server.GenesisFile))
	}
	if err != nil {
		return nil, err
	}

	application := Application(kv, confs, debug)
	application.WithLogger(logger)
	return application, nil
}

// genesisConfigs reads the configuration from the app_state of the
// genesis file.
func genesisConfigs(genFile string) (Configs, error) {
	doc, err := server.ReadGenesis(genFile)
	if err != nil {
		return Configs{}, err
	}
	var opts cattery.Options
	if err := json.Unmarshal(doc["app_state"], &opts); err != nil {
		return Configs{}, errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	return ReadConfigs(opts)
}
