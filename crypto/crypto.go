/*
Package crypto holds the ed25519 keys and signatures used to authenticate
transactions. A public key is represented on chain by a signer condition,
whose address is the raw public key.
*/
package crypto

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
	"golang.org/x/crypto/ed25519"
)

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key. It is encoded as field 1.
type PublicKey struct {
	Ed25519 []byte
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a signer condition.
func (p *PublicKey) Condition() barter.Condition {
	return barter.NewCondition(barter.SignerExtension, barter.SignerType, p.Ed25519)
}

// Address returns the address of this key, the key itself.
func (p *PublicKey) Address() barter.Address {
	return p.Condition().Address()
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return codec.NewEncoder().Bytes(1, p.Ed25519).Result()
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	*p = PublicKey{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		if f.Num == 1 {
			p.Ed25519, err = f.Bytes()
		}
		return err
	})
}

// Validate returns an error if this is not a well formed ed25519 key.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "ed25519 public key")
	}
	return nil
}

// Signature is an ed25519 signature. It is encoded as field 1.
type Signature struct {
	Ed25519 []byte
}

func (s *Signature) Marshal() ([]byte, error) {
	return codec.NewEncoder().Bytes(1, s.Ed25519).Result()
}

func (s *Signature) Unmarshal(raw []byte) error {
	*s = Signature{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		if f.Num == 1 {
			s.Ed25519, err = f.Bytes()
		}
		return err
	})
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "ed25519 private key")
	}
	return &Signature{Ed25519: ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
