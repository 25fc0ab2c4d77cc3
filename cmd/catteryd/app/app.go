/*
Package app wires the cattery extensions into an ABCI application.

It builds the decorator stack, routes every message to its
extension, and loads the consensus configuration the controllers
are built with.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/app"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/store/iavl"
	"github.com/iov-one/cattery/x/audit"
	"github.com/iov-one/cattery/x/auth"
	"github.com/iov-one/cattery/x/cash"
	"github.com/iov-one/cattery/x/kitties"
	"github.com/iov-one/cattery/x/random"
	"github.com/iov-one/cattery/x/utils"
)

// Name is reported by the abci Info call.
const Name = "cattery"

// Configs holds the consensus configuration of all extensions.
type Configs struct {
	Cash    cash.Configuration
	Kitties kitties.Configuration
}

// ReadConfigs extracts the configuration from the genesis app_state.
func ReadConfigs(opts cattery.Options) (Configs, error) {
	var confs Configs
	var err error
	if confs.Cash, err = cash.ReadConfig(opts); err != nil {
		return confs, errors.Wrap(err, "cash")
	}
	if confs.Kitties, err = kitties.ReadConfig(opts); err != nil {
		return confs, errors.Wrap(err, "kitties")
	}
	return confs, nil
}

// LoadConfigs returns the configuration persisted by the genesis.
// errors.ErrNotFound is returned before the genesis was loaded.
func LoadConfigs(db cattery.ReadOnlyKVStore) (Configs, error) {
	var confs Configs
	var err error
	if confs.Cash, err = cash.LoadConfig(db); err != nil {
		return confs, errors.Wrap(err, "cash")
	}
	if confs.Kitties, err = kitties.LoadConfig(db); err != nil {
		return confs, errors.Wrap(err, "kitties")
	}
	return confs, nil
}

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() auth.Authenticator {
	return auth.Authenticate{}
}

// Controllers builds the currency and kitties controllers. The kitties
// controller escrows through the currency controller and draws its
// randomness from the block hash.
func Controllers(confs Configs) (cash.Controller, kitties.Controller) {
	cashCtrl := cash.NewController(confs.Cash)
	kittyCtrl := kitties.NewController(confs.Kitties, cashCtrl, random.BlockSource{})
	return cashCtrl, kittyCtrl
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		auth.NewDecorator(),
		utils.NewActionTagger(),
		// on DeliverTx, bad tx will increment the sequence
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the currency and kitties
// handlers.
func Router(authFn auth.Authenticator, confs Configs) *app.Router {
	cashCtrl, kittyCtrl := Controllers(confs)
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, cashCtrl)
	kitties.RegisterRoutes(r, authFn, kittyCtrl)
	return r
}

// QueryRouter returns a query router giving access to
// "/auth", "/cash", "/kitties", "/kitties/owner" and "/audit".
func QueryRouter() cattery.QueryRouter {
	r := cattery.NewQueryRouter()
	auth.RegisterQuery(r)
	cash.RegisterQuery(r)
	kitties.RegisterQuery(r)
	audit.RegisterQuery(r)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(confs Configs) cattery.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, confs))
}

// Initializers loads the genesis state of all extensions.
func Initializers() cattery.Initializer {
	return cattery.ChainInitializers(
		cash.Initializer{},
		kitties.Initializer{},
	)
}

// Application constructs the ABCI application over the given store.
func Application(kv cattery.CommitKVStore, confs Configs, debug bool) *app.BaseApp {
	store := app.NewStoreApp(Name, kv, QueryRouter(), context.Background())
	store.WithInit(Initializers())
	return app.NewBaseApp(store, TxDecoder, Stack(confs), debug)
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (cattery.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
