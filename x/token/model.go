package token

import (
	"regexp"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

var isSymbol = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`).MatchString

// maxDecimals limits the precision a mint can declare.
const maxDecimals = 18

// Mint describes a single fungible token.
type Mint struct {
	// Authority is the only address allowed to issue tokens.
	Authority barter.Address
	Symbol    string
	Decimals  uint32
	// Supply is the total amount of tokens issued.
	Supply uint64
	// Restricted mints consult the transfer hook before every transfer.
	Restricted bool
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Validate() error {
	var err error
	err = errors.AppendField(err, "Authority", m.Authority.Validate())
	if !isSymbol(m.Symbol) {
		err = errors.AppendField(err, "Symbol", errors.Wrapf(errors.ErrInput, "invalid symbol %q", m.Symbol))
	}
	if m.Decimals > maxDecimals {
		err = errors.AppendField(err, "Decimals", errors.ErrInput)
	}
	return err
}

func (m *Mint) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Authority).
		String(2, m.Symbol).
		Uint64(3, uint64(m.Decimals)).
		Uint64(4, m.Supply).
		Bool(5, m.Restricted).
		Result()
}

func (m *Mint) Unmarshal(raw []byte) error {
	*m = Mint{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Authority, err = f.Bytes()
		case 2:
			m.Symbol, err = f.String()
		case 3:
			var v uint64
			v, err = f.Uint64()
			m.Decimals = uint32(v)
		case 4:
			m.Supply, err = f.Uint64()
		case 5:
			m.Restricted, err = f.Bool()
		}
		return err
	})
}

// Account holds tokens of a single mint.
type Account struct {
	Mint   barter.Address
	Owner  barter.Address
	Amount uint64
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	var err error
	err = errors.AppendField(err, "Mint", a.Mint.Validate())
	err = errors.AppendField(err, "Owner", a.Owner.Validate())
	return err
}

func (a *Account) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, a.Mint).
		Bytes(2, a.Owner).
		Uint64(3, a.Amount).
		Result()
}

func (a *Account) Unmarshal(raw []byte) error {
	*a = Account{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			a.Mint, err = f.Bytes()
		case 2:
			a.Owner, err = f.Bytes()
		case 3:
			a.Amount, err = f.Uint64()
		}
		return err
	})
}

// NewMintBucket returns a bucket storing mints by their address.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("mint")
}

// NewAccountBucket returns a bucket storing token accounts by their address.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("account")
}

// MintAddress returns the address of the mint with given symbol created by
// authority.
func MintAddress(authority barter.Address, symbol string) (barter.Address, error) {
	addr, _, err := barter.FindDerivedAddress("token", []byte("mint"), authority, []byte(symbol))
	return addr, err
}

// AssociatedAddress returns the address of the account holding tokens of
// mint on behalf of owner. Every owner has exactly one associated account
// per mint.
func AssociatedAddress(owner, mint barter.Address) (barter.Address, error) {
	addr, _, err := barter.FindDerivedAddress("token", []byte("assoc"), owner, mint)
	return addr, err
}
