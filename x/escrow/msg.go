package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
)

var (
	_ barter.Msg = (*MakeMsg)(nil)
	_ barter.Msg = (*TakeMsg)(nil)
	_ barter.Msg = (*RefundMsg)(nil)
)

// MakeMsg opens an offer. The maker must sign it.
type MakeMsg struct {
	Maker barter.Address
	MintA barter.Address
	MintB barter.Address
	// MakerAtaA is the maker account the deposit is taken from.
	MakerAtaA barter.Address
	Seed      uint64
	// Deposit is the amount of MintA tokens moved into the vault.
	Deposit uint64
	// Receive is the amount of MintB tokens the maker wants.
	Receive uint64
	// WaitingTime in seconds is added to the block time to compute the
	// unlock time. Zero or negative means the offer can be taken at once.
	WaitingTime int64
}

func (MakeMsg) Path() string {
	return "escrow/make"
}

func (m *MakeMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Maker", m.Maker.Validate())
	err = validateMints(err, m.MintA, m.MintB)
	err = errors.AppendField(err, "MakerAtaA", m.MakerAtaA.Validate())
	if m.Deposit == 0 {
		err = errors.AppendField(err, "Deposit", errors.Wrap(errors.ErrAmount, "must be greater than zero"))
	}
	if m.Receive == 0 {
		err = errors.AppendField(err, "Receive", errors.Wrap(errors.ErrAmount, "must be greater than zero"))
	}
	return err
}

func validateMints(err error, mintA, mintB barter.Address) error {
	err = errors.AppendField(err, "MintA", mintA.Validate())
	err = errors.AppendField(err, "MintB", mintB.Validate())
	if mintA.Equals(mintB) {
		err = errors.AppendField(err, "MintB", errors.Wrap(errors.ErrInput, "cannot swap a mint for itself"))
	}
	return err
}

func (m *MakeMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Maker).
		Bytes(2, m.MintA).
		Bytes(3, m.MintB).
		Bytes(4, m.MakerAtaA).
		Uint64(5, m.Seed).
		Uint64(6, m.Deposit).
		Uint64(7, m.Receive).
		Int64(8, m.WaitingTime).
		Result()
}

func (m *MakeMsg) Unmarshal(raw []byte) error {
	*m = MakeMsg{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Maker, err = f.Bytes()
		case 2:
			m.MintA, err = f.Bytes()
		case 3:
			m.MintB, err = f.Bytes()
		case 4:
			m.MakerAtaA, err = f.Bytes()
		case 5:
			m.Seed, err = f.Uint64()
		case 6:
			m.Deposit, err = f.Uint64()
		case 7:
			m.Receive, err = f.Uint64()
		case 8:
			m.WaitingTime, err = f.Int64()
		}
		return err
	})
}

// TakeMsg accepts an offer. The taker must sign it.
type TakeMsg struct {
	Taker barter.Address
	Maker barter.Address
	MintA barter.Address
	MintB barter.Address
	// TakerAtaA receives the deposit. It is created when missing.
	TakerAtaA barter.Address
	// TakerAtaB pays the maker.
	TakerAtaB barter.Address
	// MakerAtaB receives the payment. It is created when missing.
	MakerAtaB barter.Address
	Escrow    barter.Address
	Vault     barter.Address
}

func (TakeMsg) Path() string {
	return "escrow/take"
}

func (m *TakeMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Taker", m.Taker.Validate())
	err = errors.AppendField(err, "Maker", m.Maker.Validate())
	err = validateMints(err, m.MintA, m.MintB)
	err = errors.AppendField(err, "TakerAtaA", m.TakerAtaA.Validate())
	err = errors.AppendField(err, "TakerAtaB", m.TakerAtaB.Validate())
	err = errors.AppendField(err, "MakerAtaB", m.MakerAtaB.Validate())
	err = errors.AppendField(err, "Escrow", m.Escrow.Validate())
	err = errors.AppendField(err, "Vault", m.Vault.Validate())
	return err
}

func (m *TakeMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Taker).
		Bytes(2, m.Maker).
		Bytes(3, m.MintA).
		Bytes(4, m.MintB).
		Bytes(5, m.TakerAtaA).
		Bytes(6, m.TakerAtaB).
		Bytes(7, m.MakerAtaB).
		Bytes(8, m.Escrow).
		Bytes(9, m.Vault).
		Result()
}

func (m *TakeMsg) Unmarshal(raw []byte) error {
	*m = TakeMsg{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Taker, err = f.Bytes()
		case 2:
			m.Maker, err = f.Bytes()
		case 3:
			m.MintA, err = f.Bytes()
		case 4:
			m.MintB, err = f.Bytes()
		case 5:
			m.TakerAtaA, err = f.Bytes()
		case 6:
			m.TakerAtaB, err = f.Bytes()
		case 7:
			m.MakerAtaB, err = f.Bytes()
		case 8:
			m.Escrow, err = f.Bytes()
		case 9:
			m.Vault, err = f.Bytes()
		}
		return err
	})
}

// RefundMsg cancels an offer. The maker must sign it.
type RefundMsg struct {
	Maker barter.Address
	MintA barter.Address
	// MakerAtaA receives the deposit back. It is created when missing.
	MakerAtaA barter.Address
	Escrow    barter.Address
	Vault     barter.Address
}

func (RefundMsg) Path() string {
	return "escrow/refund"
}

func (m *RefundMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Maker", m.Maker.Validate())
	err = errors.AppendField(err, "MintA", m.MintA.Validate())
	err = errors.AppendField(err, "MakerAtaA", m.MakerAtaA.Validate())
	err = errors.AppendField(err, "Escrow", m.Escrow.Validate())
	err = errors.AppendField(err, "Vault", m.Vault.Validate())
	return err
}

func (m *RefundMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Maker).
		Bytes(2, m.MintA).
		Bytes(3, m.MakerAtaA).
		Bytes(4, m.Escrow).
		Bytes(5, m.Vault).
		Result()
}

func (m *RefundMsg) Unmarshal(raw []byte) error {
	*m = RefundMsg{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Maker, err = f.Bytes()
		case 2:
			m.MintA, err = f.Bytes()
		case 3:
			m.MakerAtaA, err = f.Bytes()
		case 4:
			m.Escrow, err = f.Bytes()
		case 5:
			m.Vault, err = f.Bytes()
		}
		return err
	})
}
