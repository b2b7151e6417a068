package barter

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/barter/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a derived address can be
	// computed from.
	MaxSeeds = 16

	// MaxSeedLength is the maximum size in bytes of a single seed.
	MaxSeedLength = 32

	derivedMarker = "DerivedAddress"
)

// DeriveAddress computes the address owned by the given program for the
// seeds and bump. The digest is
//
//   sha256(seeds[0] || ... || seeds[n] || bump || program || "DerivedAddress")
//
// A digest that decodes to a valid ed25519 point could be controlled by a
// private key and is rejected with ErrInput. Nobody holds a key for an
// accepted address, so only the program code can authorize on its behalf.
func DeriveAddress(program string, bump byte, seeds ...[]byte) (Address, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}
	digest := derivedDigest(program, bump, seeds)
	if IsOnCurve(digest) {
		return nil, errors.Wrap(errors.ErrInput, "derived address is a valid public key")
	}
	return Address(digest), nil
}

// FindDerivedAddress searches the bump from 255 down to 0 and returns the
// first valid derived address together with the bump that produced it.
func FindDerivedAddress(program string, seeds ...[]byte) (Address, byte, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		digest := derivedDigest(program, byte(bump), seeds)
		if !IsOnCurve(digest) {
			return Address(digest), byte(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrInput, "unable to find a valid bump")
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(errors.ErrInput, "max %d seeds", MaxSeeds)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(errors.ErrInput, "seed %d longer than %d bytes", i, MaxSeedLength)
		}
	}
	return nil
}

func derivedDigest(program string, bump byte, seeds [][]byte) []byte {
	h := sha256.New()
	for _, s := range seeds {
		_, _ = h.Write(s)
	}
	_, _ = h.Write([]byte{bump})
	_, _ = h.Write([]byte(program))
	_, _ = h.Write([]byte(derivedMarker))
	return h.Sum(nil)
}

// IsOnCurve returns true if given bytes are a valid compressed ed25519 point,
// which is what every public key is.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
