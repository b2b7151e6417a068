package escrow

import "github.com/iov-one/barter/errors"

// escrow takes 1010-1020
var (
	// ErrTooEarly is returned when an offer is taken before its unlock
	// time. Retrying once the unlock time is reached resolves it.
	ErrTooEarly = errors.RegisterRetryable(1010, "escrow is still locked")

	// ErrDerivation is returned when a referenced address does not match
	// the one derived from the escrow record.
	ErrDerivation = errors.Register(1011, "derivation mismatch")
)
