package sigs

import (
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	// Helpful to store original, unparsed bytes here, just in case.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature of the sign bytes of a transaction, together
// with the key and the sequence it was created for.
type StdSignature struct {
	Sequence  int64
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	enc := codec.NewEncoder().Int64(1, s.Sequence)
	if s.Pubkey != nil {
		enc = enc.Message(2, s.Pubkey)
	}
	if s.Signature != nil {
		enc = enc.Message(3, s.Signature)
	}
	return enc.Result()
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	*s = StdSignature{}
	return codec.Decode(raw, func(f codec.Field) error {
		switch f.Num {
		case 1:
			v, err := f.Int64()
			s.Sequence = v
			return err
		case 2:
			b, err := f.Bytes()
			if err != nil {
				return err
			}
			s.Pubkey = &crypto.PublicKey{}
			return s.Pubkey.Unmarshal(b)
		case 3:
			b, err := f.Bytes()
			if err != nil {
				return err
			}
			s.Signature = &crypto.Signature{}
			return s.Signature.Unmarshal(b)
		}
		return nil
	})
}
