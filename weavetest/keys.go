package weavetest

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
)

// NewKey returns a new random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signer condition of a new random key.
func NewCondition() barter.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a new random key.
func NewAddress() barter.Address {
	return NewCondition().Address()
}
