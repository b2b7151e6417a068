package token

import "github.com/iov-one/barter/errors"

// token takes 1000-1009
var (
	// ErrMintMismatch is returned when tokens of one mint are moved into
	// an account of another mint.
	ErrMintMismatch = errors.Register(1000, "mint mismatch")

	// ErrOwnerMismatch is returned when an account does not belong to the
	// expected owner.
	ErrOwnerMismatch = errors.Register(1001, "owner mismatch")
)
