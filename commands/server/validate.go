package server

import (
	"encoding/json"
	"path/filepath"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/store"
	"github.com/tendermint/tendermint/libs/log"
)

// ValidateCmd loads the app_state of each given genesis file into a
// throw-away store. Without arguments the genesis file of the home
// directory is checked.
func ValidateCmd(ini cattery.Initializer, logger log.Logger, home string, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{filepath.Join(home, GenesisFile)}
	}
	if err := ValidateGenesis(ini, paths); err != nil {
		return err
	}
	logger.Info("Genesis is valid", "files", len(paths))
	return nil
}

// ValidateGenesis runs ini against every genesis file, stopping at the
// first one that cannot be loaded.
func ValidateGenesis(ini cattery.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini cattery.Initializer, genesisPath string) error {
	doc, err := ReadGenesis(genesisPath)
	if err != nil {
		return err
	}
	raw, ok := doc["app_state"]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}
	var state cattery.Options
	if err := json.Unmarshal(raw, &state); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}

	// the result is discarded
	db := store.MemStore()
	if err := ini.FromGenesis(state, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
