package sigs

import "github.com/iov-one/barter/errors"

// ErrInvalidSequence is returned when a signature was created for another
// sequence than the one stored for the signer.
var ErrInvalidSequence = errors.Register(1020, "invalid sequence number")
