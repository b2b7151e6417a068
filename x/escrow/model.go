package escrow

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/x/token"
)

// BucketName is where escrow records are stored.
const BucketName = "escrow"

// RecordSize is the length of a serialized escrow record.
const RecordSize = discriminatorSize + 8 + 3*barter.AddressLength + 8 + 8 + 1

const discriminatorSize = 8

// discriminator prefixes every serialized record so that bytes of another
// type are never decoded as an escrow.
var discriminator = func() []byte {
	sum := sha256.Sum256([]byte("account:Escrow"))
	return sum[:discriminatorSize]
}()

// Escrow is an open offer. It is created by Make and removed by either Take
// or Refund. It is never modified.
type Escrow struct {
	Seed  uint64
	Maker barter.Address
	// MintA is the mint of the deposited tokens.
	MintA barter.Address
	// MintB is the mint of the tokens the maker wants.
	MintB barter.Address
	// Receive is the amount of MintB tokens the maker wants.
	Receive uint64
	// UnlockTime is the earliest block time the offer can be taken at.
	UnlockTime barter.UnixTime
	// Bump together with maker and seed reproduces the record address.
	Bump byte
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Validate() error {
	var err error
	err = errors.AppendField(err, "Maker", e.Maker.Validate())
	err = errors.AppendField(err, "MintA", e.MintA.Validate())
	err = errors.AppendField(err, "MintB", e.MintB.Validate())
	if e.MintA.Equals(e.MintB) {
		err = errors.AppendField(err, "MintB", errors.Wrap(errors.ErrInput, "same as MintA"))
	}
	if e.Receive == 0 {
		err = errors.AppendField(err, "Receive", errors.ErrAmount)
	}
	return err
}

// Marshal serializes the record into a fixed layout: discriminator, seed,
// maker, mint a, mint b, receive, unlock time and bump. Integers are little
// endian.
func (e *Escrow) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	b := make([]byte, 0, RecordSize)
	b = append(b, discriminator...)
	b = appendUint64(b, e.Seed)
	b = append(b, e.Maker...)
	b = append(b, e.MintA...)
	b = append(b, e.MintB...)
	b = appendUint64(b, e.Receive)
	b = appendUint64(b, uint64(e.UnlockTime))
	b = append(b, e.Bump)
	return b, nil
}

func appendUint64(b []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(b, buf[:]...)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrModel, "record of %d bytes", len(raw))
	}
	if !bytes.Equal(raw[:discriminatorSize], discriminator) {
		return errors.Wrap(errors.ErrModel, "not an escrow record")
	}
	r := raw[discriminatorSize:]
	next := func(n int) []byte {
		chunk := append([]byte(nil), r[:n]...)
		r = r[n:]
		return chunk
	}
	e.Seed = binary.LittleEndian.Uint64(next(8))
	e.Maker = next(barter.AddressLength)
	e.MintA = next(barter.AddressLength)
	e.MintB = next(barter.AddressLength)
	e.Receive = binary.LittleEndian.Uint64(next(8))
	e.UnlockTime = barter.UnixTime(binary.LittleEndian.Uint64(next(8)))
	e.Bump = next(1)[0]
	return nil
}

// NewBucket returns a bucket storing escrow records by their derived
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName)
}

func seedBytes(seed uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	return b[:]
}

// EscrowAddress returns the address of the offer of maker with given seed,
// together with the bump that produced it.
func EscrowAddress(maker barter.Address, seed uint64) (barter.Address, byte, error) {
	return barter.FindDerivedAddress("escrow", []byte("escrow"), maker, seedBytes(seed))
}

// VaultAddress returns the address of the token account holding the deposit
// of the offer at escrow.
func VaultAddress(escrow, mintA barter.Address) (barter.Address, error) {
	return token.AssociatedAddress(escrow, mintA)
}

// address recomputes the record address from its own content.
func (e *Escrow) address() (barter.Address, error) {
	return barter.DeriveAddress("escrow", e.Bump, []byte("escrow"), e.Maker, seedBytes(e.Seed))
}
