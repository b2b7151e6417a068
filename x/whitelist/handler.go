package whitelist

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/x"
)

const (
	addCost    int64 = 50
	removeCost int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r barter.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(AddMsg{}.Path(), AddHandler{auth: auth, bucket: bucket})
	r.Handle(RemoveMsg{}.Path(), RemoveHandler{auth: auth, bucket: bucket})
}

// RegisterQuery will register this bucket as "/whitelist"
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("whitelist", qr)
}

// AddHandler creates marker records.
type AddHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ barter.Handler = AddHandler{}

func (h AddHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg *AddMsg
	if err := loadAdminMsg(ctx, db, tx, h.auth, &msg); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: addCost}, nil
}

func (h AddHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg *AddMsg
	if err := loadAdminMsg(ctx, db, tx, h.auth, &msg); err != nil {
		return nil, err
	}
	addr, bump, err := EntryAddress(msg.User)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Insert(db, addr, &Entry{Bump: bump}); err != nil {
		return nil, errors.Wrapf(err, "user %s", msg.User)
	}
	barter.GetLogger(ctx).Info("user added to whitelist", "user", msg.User)
	return &barter.DeliverResult{Data: addr}, nil
}

// RemoveHandler deletes marker records.
type RemoveHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ barter.Handler = RemoveHandler{}

func (h RemoveHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg *RemoveMsg
	if err := loadAdminMsg(ctx, db, tx, h.auth, &msg); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: removeCost}, nil
}

func (h RemoveHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg *RemoveMsg
	if err := loadAdminMsg(ctx, db, tx, h.auth, &msg); err != nil {
		return nil, err
	}
	addr, _, err := EntryAddress(msg.User)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, addr); err != nil {
		return nil, errors.Wrapf(err, "user %s", msg.User)
	}
	barter.GetLogger(ctx).Info("user removed from whitelist", "user", msg.User)
	return &barter.DeliverResult{}, nil
}

// loadAdminMsg loads the message and ensures the administrator signed the
// transaction.
func loadAdminMsg(ctx barter.Context, db barter.ReadOnlyKVStore, tx barter.Tx, auth x.Authenticator, dest interface{}) error {
	if err := barter.LoadMsg(tx, dest); err != nil {
		return errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, conf.Admin) {
		return errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}
	return nil
}
