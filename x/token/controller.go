package token

import (
	"math"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/x/cash"
)

// Controller is the custody layer used by the escrow and the token message
// handlers.
type Controller interface {
	// CreateMint creates a new mint controlled by authority and returns
	// its address.
	CreateMint(db barter.KVStore, authority barter.Address, symbol string, decimals uint32, restricted bool) (barter.Address, error)

	// MintTo issues new tokens into an account. Only the mint authority
	// is allowed to do it.
	MintTo(db barter.KVStore, auth Authority, account barter.Address, amount uint64) error

	// EnsureAssociated returns the associated account of owner for given
	// mint, creating it if it does not exist yet. The account reserve of
	// a new account is paid by payer.
	EnsureAssociated(db barter.KVStore, payer, owner, mint barter.Address) (barter.Address, error)

	// Transfer moves tokens between two accounts of the same mint. The
	// owner of the source account must be authorized.
	Transfer(db barter.KVStore, auth Authority, from, to barter.Address, amount uint64) error

	// Close deletes an empty account and returns its reserve to
	// destination. The owner of the account must be authorized.
	Close(db barter.KVStore, auth Authority, account, destination barter.Address) error

	// Balance returns the amount held by an account.
	Balance(db barter.ReadOnlyKVStore, account barter.Address) (uint64, error)

	// Account returns the account stored at given address.
	Account(db barter.ReadOnlyKVStore, account barter.Address) (*Account, error)

	// Mint returns the mint stored at given address.
	Mint(db barter.ReadOnlyKVStore, mint barter.Address) (*Mint, error)
}

// BaseController is the default implementation of Controller.
type BaseController struct {
	mints    orm.ModelBucket
	accounts orm.ModelBucket
	cash     cash.Controller
	hook     TransferHook
}

var _ Controller = (*BaseController)(nil)

// NewController returns a controller charging account reserves in native
// coins. Hook may be nil.
func NewController(cashctrl cash.Controller, hook TransferHook) *BaseController {
	return &BaseController{
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
		cash:     cashctrl,
		hook:     hook,
	}
}

func (c *BaseController) CreateMint(db barter.KVStore, authority barter.Address, symbol string, decimals uint32, restricted bool) (barter.Address, error) {
	addr, err := MintAddress(authority, symbol)
	if err != nil {
		return nil, errors.Wrap(err, "mint address")
	}
	mint := Mint{
		Authority:  authority,
		Symbol:     symbol,
		Decimals:   decimals,
		Restricted: restricted,
	}
	if err := c.mints.Insert(db, addr, &mint); err != nil {
		return nil, errors.Wrap(err, "cannot store mint")
	}
	return addr, nil
}

func (c *BaseController) MintTo(db barter.KVStore, auth Authority, account barter.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	acc, err := c.Account(db, account)
	if err != nil {
		return err
	}
	var mint Mint
	if err := c.mints.One(db, acc.Mint, &mint); err != nil {
		return errors.Wrap(err, "mint")
	}
	if !auth.Authorizes(mint.Authority) {
		return errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	if math.MaxUint64-mint.Supply < amount || math.MaxUint64-acc.Amount < amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	mint.Supply += amount
	acc.Amount += amount
	if err := c.mints.Put(db, acc.Mint, &mint); err != nil {
		return err
	}
	return c.accounts.Put(db, account, acc)
}

func (c *BaseController) EnsureAssociated(db barter.KVStore, payer, owner, mint barter.Address) (barter.Address, error) {
	addr, err := AssociatedAddress(owner, mint)
	if err != nil {
		return nil, errors.Wrap(err, "associated address")
	}
	switch acc, err := c.Account(db, addr); {
	case err == nil:
		if !acc.Owner.Equals(owner) {
			return nil, errors.Wrapf(ErrOwnerMismatch, "account %s", addr)
		}
		return addr, nil
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	if err := c.mints.Has(db, mint); err != nil {
		return nil, errors.Wrapf(err, "mint %s", mint)
	}
	if err := c.chargeReserve(db, payer, addr); err != nil {
		return nil, err
	}
	if err := c.accounts.Insert(db, addr, &Account{Mint: mint, Owner: owner}); err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	return addr, nil
}

func (c *BaseController) chargeReserve(db barter.KVStore, payer, account barter.Address) error {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if conf.AccountReserve.IsZero() {
		return nil
	}
	if err := c.cash.MoveCoins(db, payer, account, conf.AccountReserve); err != nil {
		return errors.Wrap(err, "account reserve")
	}
	return nil
}

func (c *BaseController) Transfer(db barter.KVStore, auth Authority, from, to barter.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	src, err := c.Account(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if !auth.Authorizes(src.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "account %s owner signature missing", from)
	}
	dst, err := c.Account(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !src.Mint.Equals(dst.Mint) {
		return errors.Wrapf(ErrMintMismatch, "%s to %s", src.Mint, dst.Mint)
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "account %s holds %d", from, src.Amount)
	}
	if err := c.runHook(db, auth, src); err != nil {
		return err
	}
	if from.Equals(to) {
		return nil
	}
	if math.MaxUint64-dst.Amount < amount {
		return errors.Wrap(errors.ErrOverflow, "destination")
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := c.accounts.Put(db, from, src); err != nil {
		return err
	}
	return c.accounts.Put(db, to, dst)
}

func (c *BaseController) runHook(db barter.ReadOnlyKVStore, auth Authority, src *Account) error {
	if c.hook == nil {
		return nil
	}
	if cu, ok := auth.(Custodian); ok && cu.Custodies(src.Owner) {
		return nil
	}
	var mint Mint
	if err := c.mints.One(db, src.Mint, &mint); err != nil {
		return errors.Wrap(err, "mint")
	}
	if !mint.Restricted {
		return nil
	}
	return c.hook.BeforeTransfer(db, src.Mint, src.Owner)
}

func (c *BaseController) Close(db barter.KVStore, auth Authority, account, destination barter.Address) error {
	acc, err := c.Account(db, account)
	if err != nil {
		return err
	}
	if !auth.Authorizes(acc.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "account %s owner signature missing", account)
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "account %s holds %d", account, acc.Amount)
	}
	if err := c.accounts.Delete(db, account); err != nil {
		return err
	}

	reserve, err := c.cash.Balance(db, account)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reserve")
	}
	for _, r := range reserve {
		if err := c.cash.MoveCoins(db, account, destination, *r); err != nil {
			return errors.Wrap(err, "return reserve")
		}
	}
	return nil
}

func (c *BaseController) Balance(db barter.ReadOnlyKVStore, account barter.Address) (uint64, error) {
	acc, err := c.Account(db, account)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

func (c *BaseController) Account(db barter.ReadOnlyKVStore, account barter.Address) (*Account, error) {
	var acc Account
	if err := c.accounts.One(db, account, &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", account)
	}
	return &acc, nil
}

func (c *BaseController) Mint(db barter.ReadOnlyKVStore, mint barter.Address) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, mint, &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", mint)
	}
	return &m, nil
}
