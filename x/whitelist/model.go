package whitelist

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// Entry is the marker record of an allowed user. Its existence is the only
// information it carries, the bump allows to recompute its address.
type Entry struct {
	Bump byte
}

var _ orm.Model = (*Entry)(nil)

func (e *Entry) Validate() error {
	return nil
}

func (e *Entry) Marshal() ([]byte, error) {
	// Shifted by one so that the encoded value is never empty.
	return codec.NewEncoder().Uint64(1, uint64(e.Bump)+1).Result()
}

func (e *Entry) Unmarshal(raw []byte) error {
	*e = Entry{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		v, err := f.Uint64()
		if err != nil {
			return err
		}
		if v == 0 || v > 256 {
			return errors.Wrap(errors.ErrModel, "bump out of range")
		}
		e.Bump = byte(v - 1)
		return nil
	})
}

// NewBucket returns a bucket storing entries by their derived address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("whitelist")
}

// EntryAddress returns the address of the marker record of given user.
func EntryAddress(user barter.Address) (barter.Address, byte, error) {
	return barter.FindDerivedAddress("whitelist", []byte("whitelist"), user)
}

// IsWhitelisted returns true if the user is present on the list.
func IsWhitelisted(db barter.ReadOnlyKVStore, user barter.Address) (bool, error) {
	addr, _, err := EntryAddress(user)
	if err != nil {
		return false, err
	}
	switch err := NewBucket().Has(db, addr); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// TransferHook rejects transfers from owners that are not on the list.
type TransferHook struct{}

func (TransferHook) BeforeTransfer(db barter.ReadOnlyKVStore, mint, owner barter.Address) error {
	ok, err := IsWhitelisted(db, owner)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not whitelisted", owner)
	}
	return nil
}
