package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/x"
)

// Authority is a capability to act on behalf of a set of addresses. Every
// operation that moves tokens out of an account or issues new tokens
// requires an Authority that authorizes the account owner or the mint
// authority.
type Authority interface {
	Authorizes(barter.Address) bool
}

// Signers returns an Authority for all addresses that signed the
// transaction.
func Signers(ctx barter.Context, auth x.Authenticator) Authority {
	return signers{ctx: ctx, auth: auth}
}

type signers struct {
	ctx  barter.Context
	auth x.Authenticator
}

func (s signers) Authorizes(addr barter.Address) bool {
	return s.auth.HasAddress(s.ctx, addr)
}

// Custodian is an Authority an extension holds over accounts owned by its
// own derived addresses. Tokens leaving an account whose owner the
// custodian holds are not subject to the transfer hook.
type Custodian interface {
	Authority
	Custodies(owner barter.Address) bool
}

// TransferHook is consulted before tokens of a restricted mint are moved.
// Returning an error rejects the transfer.
type TransferHook interface {
	BeforeTransfer(db barter.ReadOnlyKVStore, mint barter.Address, owner barter.Address) error
}
