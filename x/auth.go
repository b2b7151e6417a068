package x

import (
	"github.com/iov-one/barter"
)

// Authenticator tells which conditions authorized the current transaction.
// Handlers receive it in their constructor so that the source of the
// authorization (signatures, test fixtures) can be swapped.
type Authenticator interface {
	// GetConditions returns every condition fulfilled by the transaction.
	GetConditions(barter.Context) []barter.Condition
	// HasAddress is true if any fulfilled condition has this address.
	HasAddress(barter.Context, barter.Address) bool
}

// MultiAuth merges the conditions of several Authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

// ChainAuth returns an Authenticator reporting the conditions of all impls,
// in the given order.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx barter.Context) []barter.Condition {
	var res []barter.Condition
	for _, impl := range m {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

func (m MultiAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first fulfilled condition or nil. For signature
// based authentication it is the signer that pays the sequence.
func MainSigner(ctx barter.Context, auth Authenticator) barter.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
