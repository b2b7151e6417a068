package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
)

// RegisterRoutes registers the sequence bump handler.
func RegisterRoutes(r barter.Registry, auth x.Authenticator) {
	r.Handle(BumpSequenceMsg{}.Path(), &bumpSequenceHandler{
		b:    NewBucket(),
		auth: auth,
	})
}

type bumpSequenceHandler struct {
	auth x.Authenticator
	b    Bucket
}

func (h *bumpSequenceHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	user, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Each transaction processing bumps the sequence by one. Increment
	// must represent the total increment value.
	incr := int64(msg.Increment) - 1
	if incr == 0 {
		return &barter.DeliverResult{}, nil
	}
	user.Sequence += incr
	if err := h.b.Save(db, user); err != nil {
		return nil, errors.Wrap(err, "save user")
	}
	return &barter.DeliverResult{}, nil
}

func (h *bumpSequenceHandler) validate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg *BumpSequenceMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	var user UserData
	if err := h.b.One(db, signer.Address(), &user); err != nil {
		return nil, nil, errors.Wrap(err, "no sequence")
	}
	if user.Sequence+int64(msg.Increment) > maxSequenceValue {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}
	return &user, msg, nil
}

