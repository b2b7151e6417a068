package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/commands/server"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/gconf"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/token"
	"github.com/iov-one/barter/x/whitelist"
	abci "github.com/tendermint/tendermint/abci/types"
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode. That account is also the whitelist admin.
//
// Optional arguments are the native ticker and the hex address of the
// account. A fresh key is generated and printed when no address is given.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "SOL"
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
		}
	}

	var addr string
	if len(args) > 1 {
		addr = args[1]
	} else {
		bz, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = hex.EncodeToString(bz)
		fmt.Println(keys)
	}

	opts := fmt.Sprintf(`
          {
            "cash": [
              {
                "address": "%s",
                "coins": ["1000000000 %s"]
              }
            ],
            "conf": {
              "token": {"account_reserve": "2 %s"},
              "whitelist": {"admin": "%s"},
              "escrow": {"record_reserve": "3 %s"}
            }
          }
	`, addr, ticker, ticker, addr, ticker)
	return []byte(opts), nil
}

func gconfInitializer() *gconf.Initializer {
	ini := gconf.NewInitializer()
	token.RegisterConfiguration(ini)
	whitelist.RegisterConfiguration(ini)
	escrow.RegisterConfiguration(ini)
	return ini
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "barter.db")
	}

	application, err := Application("barter", Stack(), TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in a client to use them
func GenerateCoinKey() (barter.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.Marshal(out)
	if err != nil {
		return nil, "", errors.Wrap(err, "marshal keys")
	}
	return addr, string(keys), nil
}
