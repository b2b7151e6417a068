package utils

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ barter.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Checker) (_ *barter.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Deliverer) (_ *barter.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
