package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
)

const maxMemoSize int = 128

// SendMsg moves native coins between two wallets.
type SendMsg struct {
	Source      barter.Address
	Destination barter.Address
	Amount      coin.Coin
	Memo        string
}

// Ensure we implement the Msg interface
var _ barter.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	if m.Amount.IsZero() {
		err = errors.AppendField(err, "Amount", errors.ErrAmount)
	} else {
		err = errors.AppendField(err, "Amount", m.Amount.Validate())
	}
	err = errors.AppendField(err, "Source", m.Source.Validate())
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return err
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Source).
		Bytes(2, m.Destination).
		Message(3, m.Amount).
		String(4, m.Memo).
		Result()
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	*m = SendMsg{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Source, err = f.Bytes()
		case 2:
			m.Destination, err = f.Bytes()
		case 3:
			var b []byte
			if b, err = f.Bytes(); err == nil {
				err = m.Amount.Unmarshal(b)
			}
		case 4:
			m.Memo, err = f.String()
		}
		return err
	})
}
