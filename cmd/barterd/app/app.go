/*
Package app links together all the various components
to construct the barter application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/app"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store/iavl"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/token"
	"github.com/iov-one/barter/x/utils"
	"github.com/iov-one/barter/x/whitelist"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to every extension. Restricted mints
// only move tokens of whitelisted owners.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cashctrl := cash.NewController()
	tokens := token.NewController(cashctrl, whitelist.TransferHook{})

	cash.RegisterRoutes(r, authFn, cashctrl)
	token.RegisterRoutes(r, authFn, tokens)
	whitelist.RegisterRoutes(r, authFn)
	escrow.RegisterRoutes(r, authFn, escrow.NewController(tokens, cashctrl))
	sigs.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth", "/mints", "/accounts",
// "/whitelist" and "/escrows"
func QueryRouter() barter.QueryRouter {
	r := barter.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		token.RegisterQuery,
		whitelist.RegisterQuery,
		escrow.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() barter.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns everything the genesis app_state is loaded with.
func Initializers() barter.Initializer {
	confs := gconfInitializer()
	return app.ChainInitializers(confs, &cash.Initializer{})
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h barter.Handler,
	tx barter.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (barter.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
