package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/token"
	"github.com/iov-one/barter/x/whitelist"
)

// make sure tx fulfills all interfaces
var _ barter.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// Tx carries exactly one message together with the signatures authorizing
// it.
//
// Field 1 holds the signatures, every other field number identifies the
// message type, as listed in msgFields.
type Tx struct {
	Signatures []*sigs.StdSignature
	Msg        barter.Msg
}

const signaturesField = 1

// msgFields maps the tx field number to a constructor of the message type
// stored under it. Numbers are part of the wire format and must never be
// reused.
var msgFields = map[int]func() barter.Msg{
	2:  func() barter.Msg { return new(cash.SendMsg) },
	3:  func() barter.Msg { return new(token.CreateMintMsg) },
	4:  func() barter.Msg { return new(token.MintToMsg) },
	5:  func() barter.Msg { return new(token.CreateAccountMsg) },
	6:  func() barter.Msg { return new(token.TransferMsg) },
	7:  func() barter.Msg { return new(token.CloseAccountMsg) },
	8:  func() barter.Msg { return new(whitelist.AddMsg) },
	9:  func() barter.Msg { return new(whitelist.RemoveMsg) },
	10: func() barter.Msg { return new(escrow.MakeMsg) },
	11: func() barter.Msg { return new(escrow.TakeMsg) },
	12: func() barter.Msg { return new(escrow.RefundMsg) },
	13: func() barter.Msg { return new(sigs.BumpSequenceMsg) },
}

// msgPaths is the reverse of msgFields.
var msgPaths = func() map[string]int {
	paths := make(map[string]int, len(msgFields))
	for num, fn := range msgFields {
		paths[fn().Path()] = num
	}
	return paths
}()

// NewTx wraps a message into an unsigned transaction.
func NewTx(msg barter.Msg) *Tx {
	return &Tx{Msg: msg}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (barter.Tx, error) {
	tx := new(Tx)
	err := tx.Unmarshal(bz)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (barter.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "missing message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures attached to this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}

func (tx *Tx) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	for i, sig := range tx.Signatures {
		if sig == nil {
			return nil, errors.Wrapf(errors.ErrInput, "signature %d is nil", i)
		}
		enc = enc.Message(signaturesField, sig)
	}
	if tx.Msg != nil {
		num, ok := msgPaths[tx.Msg.Path()]
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "unsupported message %q", tx.Msg.Path())
		}
		enc = enc.Message(num, tx.Msg)
	}
	return enc.Result()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	return codec.Decode(raw, func(f codec.Field) error {
		fn, ok := msgFields[f.Num]
		if !ok && f.Num != signaturesField {
			return nil
		}
		b, err := f.Bytes()
		if err != nil {
			return err
		}
		if f.Num == signaturesField {
			var sig sigs.StdSignature
			if err := sig.Unmarshal(b); err != nil {
				return errors.Wrap(err, "signature")
			}
			tx.Signatures = append(tx.Signatures, &sig)
			return nil
		}
		if tx.Msg != nil {
			return errors.Wrap(errors.ErrInput, "more than one message")
		}
		msg := fn()
		if err := msg.Unmarshal(b); err != nil {
			return errors.Wrapf(err, "message %s", msg.Path())
		}
		tx.Msg = msg
		return nil
	})
}
