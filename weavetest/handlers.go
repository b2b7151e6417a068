package weavetest

import "github.com/iov-one/barter"

// Handler is a mock implementation of the barter.Handler interface.
//
// Writes are applied to the store on every call before the configured
// result is returned, which allows testing how a failure after a partial
// write is handled.
type Handler struct {
	checkCall   int
	CheckResult barter.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult barter.DeliverResult
	DeliverErr    error

	// Writes are set in the store before returning.
	Writes []barter.Model
}

var _ barter.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) write(db barter.KVStore) error {
	for _, m := range h.Writes {
		if err := db.Set(m.Key, m.Value); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
