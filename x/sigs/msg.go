package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
)

const (
	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

var _ barter.Msg = (*BumpSequenceMsg)(nil)

// BumpSequenceMsg increments the sequence of the main signer. It can be
// used to invalidate transactions that were signed but never submitted.
type BumpSequenceMsg struct {
	// Increment is the total increment, including the one applied to
	// every processed transaction.
	Increment uint32
}

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

func (BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().Uint64(1, uint64(msg.Increment)).Result()
}

func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error {
	*msg = BumpSequenceMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		v, err := f.Uint64()
		if err != nil {
			return err
		}
		if v > maxSequenceIncrement {
			return errors.Wrap(errors.ErrMsg, "increment")
		}
		msg.Increment = uint32(v)
		return nil
	})
}
