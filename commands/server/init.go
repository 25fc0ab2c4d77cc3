package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/cattery/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagIgnore = "i"

	// GenesisFile is the location of the tendermint genesis file
	// relative to the home directory.
	GenesisFile = "config/genesis.json"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd adds the app_state produced by gen to the tendermint genesis
// file found in the home directory. An already present app_state is
// only replaced when the -i flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	ignore := initFlags.Bool(flagIgnore, false, "overwrite an existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := filepath.Join(home, GenesisFile)
	if _, err := os.Stat(genFile); err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %s, run tendermint init first", genFile)
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options, *ignore); err != nil {
		return err
	}
	logger.Info("App state written to genesis", "path", genFile)
	return nil
}

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	doc, err := ReadGenesis(filename)
	if err != nil {
		return err
	}
	if existing, ok := doc["app_state"]; ok && len(existing) > 0 && string(existing) != "null" && !force {
		return errors.Wrap(errors.ErrState, "genesis file already contains app_state, use -i to overwrite")
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}

// ReadGenesis loads the genesis file without interpreting the
// tendermint specific parts.
func ReadGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "read %s: %s", filename, err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse %s: %s", filename, err)
	}
	return doc, nil
}
