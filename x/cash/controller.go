package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// Controller is the functionality needed by cash.Handler and the extensions
// that charge storage reserves.
type Controller interface {
	// Balance returns the coins held at given address. ErrNotFound is
	// returned for an address that never held any.
	Balance(barter.ReadOnlyKVStore, barter.Address) (coin.Coins, error)

	// MoveCoins moves the given amount from src to dest. If src doesn't
	// exist, or doesn't have sufficient coins, it fails.
	MoveCoins(db barter.KVStore, src, dest barter.Address, amount coin.Coin) error

	// CoinMint adds the given amount of coins to the destination
	// address.
	CoinMint(db barter.KVStore, dest barter.Address, amount coin.Coin) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the default wallet bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db barter.ReadOnlyKVStore, addr barter.Address) (coin.Coins, error) {
	var w Wallet
	if err := c.bucket.One(db, addr, &w); err != nil {
		return nil, errors.Wrapf(err, "wallet %s", addr)
	}
	return w.Coins, nil
}

func (c BaseController) MoveCoins(db barter.KVStore, src, dest barter.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if src.Equals(dest) {
		return nil
	}

	var sender Wallet
	if err := c.bucket.One(db, src, &sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrInsufficientAmount, "empty wallet %s", src)
		}
		return errors.Wrap(err, "sender")
	}
	left, err := sender.Coins.Subtract(amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", src)
	}
	if err := c.save(db, src, left); err != nil {
		return err
	}
	return c.CoinMint(db, dest, amount)
}

func (c BaseController) CoinMint(db barter.KVStore, dest barter.Address, amount coin.Coin) error {
	var recipient Wallet
	switch err := c.bucket.One(db, dest, &recipient); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "recipient")
	}
	coins, err := recipient.Coins.Add(amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", dest)
	}
	return c.save(db, dest, coins)
}

// save stores the wallet, removing it once it holds no coins.
func (c BaseController) save(db barter.KVStore, addr barter.Address, coins coin.Coins) error {
	if coins.IsEmpty() {
		err := c.bucket.Delete(db, addr)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return c.bucket.Put(db, addr, &Wallet{Coins: coins})
}
