package escrow

import (
	"time"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/token"
)

// Controller implements the offer life cycle. All methods expect the
// caller to discard the store changes when an error is returned.
type Controller struct {
	bucket orm.ModelBucket
	tokens token.Controller
	cash   cash.Controller
}

// NewController returns a controller moving tokens with tokens and storage
// reserves with cashctrl.
func NewController(tokens token.Controller, cashctrl cash.Controller) *Controller {
	return &Controller{
		bucket: NewBucket(),
		tokens: tokens,
		cash:   cashctrl,
	}
}

// vaultAuthority authorizes moving funds owned by the escrow address. It is
// created only after the escrow address was recomputed from its record.
type vaultAuthority struct {
	escrow barter.Address
}

var _ token.Custodian = vaultAuthority{}

func (a vaultAuthority) Authorizes(addr barter.Address) bool {
	return a.escrow.Equals(addr)
}

func (a vaultAuthority) Custodies(owner barter.Address) bool {
	return a.escrow.Equals(owner)
}

// Offer returns the record stored at given escrow address.
func (c *Controller) Offer(db barter.ReadOnlyKVStore, escrow barter.Address) (*Escrow, error) {
	var e Escrow
	if err := c.bucket.One(db, escrow, &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", escrow)
	}
	return &e, nil
}

// CheckMake runs all validations of Make that do not modify the store.
func (c *Controller) CheckMake(db barter.ReadOnlyKVStore, caller token.Authority, msg *MakeMsg) (barter.Address, byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, 0, err
	}
	if !caller.Authorizes(msg.Maker) {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	addr, bump, err := EscrowAddress(msg.Maker, msg.Seed)
	if err != nil {
		return nil, 0, errors.Wrap(err, "escrow address")
	}
	switch err := c.bucket.Has(db, addr); {
	case err == nil:
		return nil, 0, errors.Wrapf(errors.ErrDuplicate, "escrow with seed %d", msg.Seed)
	case !errors.ErrNotFound.Is(err):
		return nil, 0, err
	}
	if _, err := c.tokens.Mint(db, msg.MintB); err != nil {
		return nil, 0, err
	}
	src, err := c.tokens.Account(db, msg.MakerAtaA)
	if err != nil {
		return nil, 0, err
	}
	if !src.Owner.Equals(msg.Maker) {
		return nil, 0, errors.Wrap(token.ErrOwnerMismatch, "maker account")
	}
	if !src.Mint.Equals(msg.MintA) {
		return nil, 0, errors.Wrap(token.ErrMintMismatch, "maker account")
	}
	return addr, bump, nil
}

// Make opens an offer: it stores the record, creates the vault and moves
// the deposit into it. Now is the current block time.
func (c *Controller) Make(db barter.KVStore, now time.Time, caller token.Authority, msg *MakeMsg) (*Escrow, barter.Address, error) {
	addr, bump, err := c.CheckMake(db, caller, msg)
	if err != nil {
		return nil, nil, err
	}
	unlock, err := barter.AsUnixTime(now).AddSeconds(msg.WaitingTime)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unlock time")
	}
	if err := c.chargeReserve(db, msg.Maker, addr); err != nil {
		return nil, nil, err
	}
	offer := Escrow{
		Seed:       msg.Seed,
		Maker:      msg.Maker,
		MintA:      msg.MintA,
		MintB:      msg.MintB,
		Receive:    msg.Receive,
		UnlockTime: unlock,
		Bump:       bump,
	}
	if err := c.bucket.Insert(db, addr, &offer); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store escrow")
	}
	vault, err := c.tokens.EnsureAssociated(db, msg.Maker, addr, msg.MintA)
	if err != nil {
		return nil, nil, errors.Wrap(err, "vault")
	}
	// The vault may exist already. It must hold nothing but the deposit.
	switch amount, err := c.tokens.Balance(db, vault); {
	case err != nil:
		return nil, nil, errors.Wrap(err, "vault")
	case amount != 0:
		return nil, nil, errors.Wrapf(errors.ErrState, "vault %s is not empty", vault)
	}
	if err := c.tokens.Transfer(db, caller, msg.MakerAtaA, vault, msg.Deposit); err != nil {
		return nil, nil, errors.Wrap(err, "deposit")
	}
	return &offer, addr, nil
}

func (c *Controller) chargeReserve(db barter.KVStore, maker, escrow barter.Address) error {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if conf.RecordReserve.IsZero() {
		return nil
	}
	if err := c.cash.MoveCoins(db, maker, escrow, conf.RecordReserve); err != nil {
		return errors.Wrap(err, "record reserve")
	}
	return nil
}

// loadOffer returns the record at escrow after checking that both the
// escrow and the vault addresses derive from the record itself.
func (c *Controller) loadOffer(db barter.ReadOnlyKVStore, escrow, vault barter.Address) (*Escrow, error) {
	offer, err := c.Offer(db, escrow)
	if err != nil {
		return nil, err
	}
	addr, err := offer.address()
	if err != nil || !addr.Equals(escrow) {
		return nil, errors.Wrapf(ErrDerivation, "escrow %s does not derive from its record", escrow)
	}
	wantVault, err := VaultAddress(escrow, offer.MintA)
	if err != nil {
		return nil, errors.Wrap(err, "vault address")
	}
	if !wantVault.Equals(vault) {
		return nil, errors.Wrapf(ErrDerivation, "vault %s is not the vault of escrow %s", vault, escrow)
	}
	return offer, nil
}

// CheckTake runs all validations of Take that do not modify the store.
func (c *Controller) CheckTake(db barter.ReadOnlyKVStore, now time.Time, caller token.Authority, msg *TakeMsg) (*Escrow, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if !caller.Authorizes(msg.Taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	offer, err := c.loadOffer(db, msg.Escrow, msg.Vault)
	if err != nil {
		return nil, err
	}
	if !offer.Maker.Equals(msg.Maker) || !offer.MintA.Equals(msg.MintA) || !offer.MintB.Equals(msg.MintB) {
		return nil, errors.Wrap(ErrDerivation, "maker or mints do not match the escrow")
	}
	if err := expectAssociated(msg.TakerAtaA, msg.Taker, offer.MintA); err != nil {
		return nil, errors.Wrap(err, "taker account a")
	}
	if err := expectAssociated(msg.MakerAtaB, offer.Maker, offer.MintB); err != nil {
		return nil, errors.Wrap(err, "maker account b")
	}
	if unlock := offer.UnlockTime; barter.AsUnixTime(now).Before(unlock) {
		return nil, errors.Wrapf(ErrTooEarly, "unlocks at %d", int64(unlock))
	}
	return offer, nil
}

func expectAssociated(account, owner, mint barter.Address) error {
	want, err := token.AssociatedAddress(owner, mint)
	if err != nil {
		return err
	}
	if !want.Equals(account) {
		return errors.Wrapf(ErrDerivation, "%s is not the associated account", account)
	}
	return nil
}

// Take accepts an offer. The taker pays the maker first and only then the
// vault is released to the taker. Vault and record are closed and their
// reserves returned to the maker.
func (c *Controller) Take(db barter.KVStore, now time.Time, caller token.Authority, msg *TakeMsg) (*Escrow, error) {
	offer, err := c.CheckTake(db, now, caller, msg)
	if err != nil {
		return nil, err
	}
	if _, err := c.tokens.EnsureAssociated(db, msg.Taker, msg.Taker, offer.MintA); err != nil {
		return nil, errors.Wrap(err, "taker account a")
	}
	if _, err := c.tokens.EnsureAssociated(db, msg.Taker, offer.Maker, offer.MintB); err != nil {
		return nil, errors.Wrap(err, "maker account b")
	}
	if err := c.tokens.Transfer(db, caller, msg.TakerAtaB, msg.MakerAtaB, offer.Receive); err != nil {
		return nil, errors.Wrap(err, "payment")
	}
	if err := c.release(db, msg.Escrow, msg.Vault, msg.TakerAtaA, offer.Maker); err != nil {
		return nil, err
	}
	return offer, nil
}

// CheckRefund runs all validations of Refund that do not modify the store.
func (c *Controller) CheckRefund(db barter.ReadOnlyKVStore, caller token.Authority, msg *RefundMsg) (*Escrow, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if !caller.Authorizes(msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	offer, err := c.loadOffer(db, msg.Escrow, msg.Vault)
	if err != nil {
		return nil, err
	}
	if !offer.Maker.Equals(msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the maker can refund")
	}
	if !offer.MintA.Equals(msg.MintA) {
		return nil, errors.Wrap(ErrDerivation, "mint does not match the escrow")
	}
	if err := expectAssociated(msg.MakerAtaA, offer.Maker, offer.MintA); err != nil {
		return nil, errors.Wrap(err, "maker account a")
	}
	return offer, nil
}

// Refund cancels an offer and returns the deposit to the maker. The unlock
// time does not apply.
func (c *Controller) Refund(db barter.KVStore, caller token.Authority, msg *RefundMsg) (*Escrow, error) {
	offer, err := c.CheckRefund(db, caller, msg)
	if err != nil {
		return nil, err
	}
	if _, err := c.tokens.EnsureAssociated(db, offer.Maker, offer.Maker, offer.MintA); err != nil {
		return nil, errors.Wrap(err, "maker account a")
	}
	if err := c.release(db, msg.Escrow, msg.Vault, msg.MakerAtaA, offer.Maker); err != nil {
		return nil, err
	}
	return offer, nil
}

// release moves the whole vault to dest and closes both the vault and the
// record. Reserves go to the maker.
func (c *Controller) release(db barter.KVStore, escrow, vault, dest, maker barter.Address) error {
	auth := vaultAuthority{escrow: escrow}
	amount, err := c.tokens.Balance(db, vault)
	if err != nil {
		return errors.Wrap(err, "vault")
	}
	if amount > 0 {
		if err := c.tokens.Transfer(db, auth, vault, dest, amount); err != nil {
			return errors.Wrap(err, "release vault")
		}
	}
	if err := c.tokens.Close(db, auth, vault, maker); err != nil {
		return errors.Wrap(err, "close vault")
	}
	if err := c.bucket.Delete(db, escrow); err != nil {
		return errors.Wrap(err, "close escrow")
	}
	reserve, err := c.cash.Balance(db, escrow)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "record reserve")
	}
	for _, r := range reserve {
		if err := c.cash.MoveCoins(db, escrow, maker, *r); err != nil {
			return errors.Wrap(err, "return record reserve")
		}
	}
	return nil
}
