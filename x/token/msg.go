package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
)

var (
	_ barter.Msg = (*CreateMintMsg)(nil)
	_ barter.Msg = (*MintToMsg)(nil)
	_ barter.Msg = (*CreateAccountMsg)(nil)
	_ barter.Msg = (*TransferMsg)(nil)
	_ barter.Msg = (*CloseAccountMsg)(nil)
)

// CreateMintMsg creates a new mint. Authority must sign it.
type CreateMintMsg struct {
	Authority  barter.Address
	Symbol     string
	Decimals   uint32
	Restricted bool
}

func (CreateMintMsg) Path() string {
	return "token/create_mint"
}

func (m *CreateMintMsg) Validate() error {
	mint := Mint{Authority: m.Authority, Symbol: m.Symbol, Decimals: m.Decimals}
	return errors.Wrap(mint.Validate(), "mint")
}

func (m *CreateMintMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Authority).
		String(2, m.Symbol).
		Uint64(3, uint64(m.Decimals)).
		Bool(4, m.Restricted).
		Result()
}

func (m *CreateMintMsg) Unmarshal(raw []byte) error {
	*m = CreateMintMsg{}
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
			m.Restricted, err = f.Bool()
		}
		return err
	})
}

// MintToMsg issues new tokens into an account. The mint authority must sign
// it.
type MintToMsg struct {
	Account barter.Address
	Amount  uint64
}

func (MintToMsg) Path() string {
	return "token/mint_to"
}

func (m *MintToMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Account", m.Account.Validate())
	if m.Amount == 0 {
		err = errors.AppendField(err, "Amount", errors.ErrAmount)
	}
	return err
}

func (m *MintToMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Account).
		Uint64(2, m.Amount).
		Result()
}

func (m *MintToMsg) Unmarshal(raw []byte) error {
	*m = MintToMsg{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Account, err = f.Bytes()
		case 2:
			m.Amount, err = f.Uint64()
		}
		return err
	})
}

// CreateAccountMsg creates the associated account of owner for a mint.
// Payer must sign it and pays the account reserve.
type CreateAccountMsg struct {
	Payer barter.Address
	Owner barter.Address
	Mint  barter.Address
}

func (CreateAccountMsg) Path() string {
	return "token/create_account"
}

func (m *CreateAccountMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Payer", m.Payer.Validate())
	err = errors.AppendField(err, "Owner", m.Owner.Validate())
	err = errors.AppendField(err, "Mint", m.Mint.Validate())
	return err
}

func (m *CreateAccountMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Payer).
		Bytes(2, m.Owner).
		Bytes(3, m.Mint).
		Result()
}

func (m *CreateAccountMsg) Unmarshal(raw []byte) error {
	*m = CreateAccountMsg{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Payer, err = f.Bytes()
		case 2:
			m.Owner, err = f.Bytes()
		case 3:
			m.Mint, err = f.Bytes()
		}
		return err
	})
}

// TransferMsg moves tokens between two accounts of the same mint. The owner
// of the source account must sign it.
type TransferMsg struct {
	Source      barter.Address
	Destination barter.Address
	Amount      uint64
}

func (TransferMsg) Path() string {
	return "token/transfer"
}

func (m *TransferMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Source", m.Source.Validate())
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		err = errors.AppendField(err, "Amount", errors.ErrAmount)
	}
	return err
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Source).
		Bytes(2, m.Destination).
		Uint64(3, m.Amount).
		Result()
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	*m = TransferMsg{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Source, err = f.Bytes()
		case 2:
			m.Destination, err = f.Bytes()
		case 3:
			m.Amount, err = f.Uint64()
		}
		return err
	})
}

// CloseAccountMsg deletes an empty account. The account reserve goes to
// Destination. The owner of the account must sign it.
type CloseAccountMsg struct {
	Account     barter.Address
	Destination barter.Address
}

func (CloseAccountMsg) Path() string {
	return "token/close_account"
}

func (m *CloseAccountMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Account", m.Account.Validate())
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	return err
}

func (m *CloseAccountMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Account).
		Bytes(2, m.Destination).
		Result()
}

func (m *CloseAccountMsg) Unmarshal(raw []byte) error {
	*m = CloseAccountMsg{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Account, err = f.Bytes()
		case 2:
			m.Destination, err = f.Bytes()
		}
		return err
	})
}
