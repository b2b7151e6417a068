package escrow

import (
	"strconv"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/token"
)

const (
	makeCost   int64 = 300
	takeCost   int64 = 300
	refundCost int64 = 0
)

// Tags set on the deliver result of every escrow message.
const (
	TagAction = "escrow.action"
	TagEscrow = "escrow.address"
	TagMaker  = "escrow.maker"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r barter.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(MakeMsg{}.Path(), MakeHandler{auth: auth, ctrl: ctrl})
	r.Handle(TakeMsg{}.Path(), TakeHandler{auth: auth, ctrl: ctrl})
	r.Handle(RefundMsg{}.Path(), RefundHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

func tagged(action string, escrow barter.Address, offer *Escrow) *barter.DeliverResult {
	res := &barter.DeliverResult{Data: escrow}
	res.Tag(TagAction, []byte(action))
	res.Tag(TagEscrow, []byte(escrow.String()))
	res.Tag(TagMaker, []byte(offer.Maker.String()))
	return res
}

// MakeHandler opens offers.
type MakeHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ barter.Handler = MakeHandler{}

// Check verifies the maker signed the message and that the seed is not in
// use yet.
func (h MakeHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg *MakeMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, _, err := h.ctrl.CheckMake(db, token.Signers(ctx, h.auth), msg); err != nil {
		return nil, err
	}
	return barter.NewCheck(makeCost, "escrow can be made"), nil
}

// Deliver stores the offer and moves the deposit into the vault.
func (h MakeHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg *MakeMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	now, err := barter.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	offer, addr, err := h.ctrl.Make(db, now, token.Signers(ctx, h.auth), msg)
	if err != nil {
		return nil, err
	}
	barter.GetLogger(ctx).Info("escrow made",
		"escrow", addr,
		"maker", offer.Maker,
		"seed", strconv.FormatUint(offer.Seed, 10),
		"unlock", int64(offer.UnlockTime))
	return tagged("make", addr, offer), nil
}

// TakeHandler accepts offers.
type TakeHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ barter.Handler = TakeHandler{}

// Check verifies the offer exists, matches the referenced addresses and is
// no longer locked.
func (h TakeHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg *TakeMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	now, err := barter.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	if _, err := h.ctrl.CheckTake(db, now, token.Signers(ctx, h.auth), msg); err != nil {
		return nil, err
	}
	return barter.NewCheck(takeCost, "escrow can be taken"), nil
}

// Deliver pays the maker, releases the vault to the taker and closes the
// offer.
func (h TakeHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg *TakeMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	now, err := barter.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	offer, err := h.ctrl.Take(db, now, token.Signers(ctx, h.auth), msg)
	if err != nil {
		return nil, err
	}
	barter.GetLogger(ctx).Info("escrow taken",
		"escrow", msg.Escrow,
		"maker", offer.Maker,
		"taker", msg.Taker,
		"seed", strconv.FormatUint(offer.Seed, 10))
	return tagged("take", msg.Escrow, offer), nil
}

// RefundHandler cancels offers.
type RefundHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ barter.Handler = RefundHandler{}

// Check verifies the maker of the offer signed the message.
func (h RefundHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg *RefundMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.CheckRefund(db, token.Signers(ctx, h.auth), msg); err != nil {
		return nil, err
	}
	return barter.NewCheck(refundCost, "escrow can be refunded"), nil
}

// Deliver returns the deposit to the maker and closes the offer.
func (h RefundHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg *RefundMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	offer, err := h.ctrl.Refund(db, token.Signers(ctx, h.auth), msg)
	if err != nil {
		return nil, err
	}
	barter.GetLogger(ctx).Info("escrow refunded",
		"escrow", msg.Escrow,
		"maker", offer.Maker,
		"seed", strconv.FormatUint(offer.Seed, 10))
	return tagged("refund", msg.Escrow, offer), nil
}
