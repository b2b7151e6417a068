package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
)

const (
	createMintCost    int64 = 100
	mintToCost        int64 = 50
	createAccountCost int64 = 100
	transferCost      int64 = 50
	closeAccountCost  int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r barter.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(CreateMintMsg{}.Path(), CreateMintHandler{auth: auth, ctrl: ctrl})
	r.Handle(MintToMsg{}.Path(), MintToHandler{auth: auth, ctrl: ctrl})
	r.Handle(CreateAccountMsg{}.Path(), CreateAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(TransferMsg{}.Path(), TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(CloseAccountMsg{}.Path(), CloseAccountHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register mints as "/mints" and token accounts as
// "/accounts".
func RegisterQuery(qr barter.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("accounts", qr)
}

// CreateMintHandler creates new mints.
type CreateMintHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ barter.Handler = CreateMintHandler{}

func (h CreateMintHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: createMintCost}, nil
}

func (h CreateMintHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.CreateMint(db, msg.Authority, msg.Symbol, msg.Decimals, msg.Restricted)
	if err != nil {
		return nil, err
	}
	return &barter.DeliverResult{Data: addr}, nil
}

func (h CreateMintHandler) validate(ctx barter.Context, tx barter.Tx) (*CreateMintMsg, error) {
	var msg *CreateMintMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return msg, nil
}

// MintToHandler issues tokens.
type MintToHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ barter.Handler = MintToHandler{}

func (h MintToHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg *MintToMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &barter.CheckResult{GasAllocated: mintToCost}, nil
}

func (h MintToHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg *MintToMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.MintTo(db, Signers(ctx, h.auth), msg.Account, msg.Amount); err != nil {
		return nil, err
	}
	return &barter.DeliverResult{}, nil
}

// CreateAccountHandler creates associated accounts.
type CreateAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ barter.Handler = CreateAccountHandler{}

func (h CreateAccountHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: createAccountCost}, nil
}

func (h CreateAccountHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.EnsureAssociated(db, msg.Payer, msg.Owner, msg.Mint)
	if err != nil {
		return nil, err
	}
	return &barter.DeliverResult{Data: addr}, nil
}

func (h CreateAccountHandler) validate(ctx barter.Context, tx barter.Tx) (*CreateAccountMsg, error) {
	var msg *CreateAccountMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	return msg, nil
}

// TransferHandler moves tokens between accounts.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ barter.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg *TransferMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &barter.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg *TransferMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Transfer(db, Signers(ctx, h.auth), msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &barter.DeliverResult{}, nil
}

// CloseAccountHandler deletes empty accounts.
type CloseAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ barter.Handler = CloseAccountHandler{}

func (h CloseAccountHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg *CloseAccountMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &barter.CheckResult{GasAllocated: closeAccountCost}, nil
}

func (h CloseAccountHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg *CloseAccountMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Close(db, Signers(ctx, h.auth), msg.Account, msg.Destination); err != nil {
		return nil, err
	}
	return &barter.DeliverResult{}, nil
}
