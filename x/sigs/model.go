package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is limited by the client. The greatest supported
// nonce value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData is the signing state of a single public key.
type UserData struct {
	Pubkey   *crypto.PublicKey
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Pubkey", u.Pubkey.Validate())
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

func (u *UserData) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, u.Pubkey).
		Int64(2, u.Sequence).
		Result()
}

func (u *UserData) Unmarshal(raw []byte) error {
	*u = UserData{}
	return codec.Decode(raw, func(f codec.Field) error {
		switch f.Num {
		case 1:
			b, err := f.Bytes()
			if err != nil {
				return err
			}
			u.Pubkey = &crypto.PublicKey{}
			return u.Pubkey.Unmarshal(b)
		case 2:
			v, err := f.Int64()
			u.Sequence = v
			return err
		}
		return nil
	})
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket stores the UserData of every key that ever signed a transaction,
// indexed by the key address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// GetOrCreate loads the UserData of given key. A fresh one with sequence
// zero is returned if the key never signed anything.
func (b Bucket) GetOrCreate(db barter.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}

// Save stores the user under the address of its public key.
func (b Bucket) Save(db barter.KVStore, user *UserData) error {
	return b.Put(db, user.Pubkey.Address(), user)
}
