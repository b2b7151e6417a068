package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use barter.Address, so address in hex, not base64
type GenesisAccount struct {
	Address barter.Address `json:"address"`
	Coins   []coin.Coin    `json:"coins"`
}

// Initializer fulfils the barter.Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ barter.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts barter.Options, db barter.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	control := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, c := range acct.Coins {
			if err := c.Validate(); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
			if err := control.CoinMint(db, acct.Address, c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
