package utils

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { _, _ = h.Check(ctx, s, nil) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

type panicHandler struct{}

var _ barter.Handler = panicHandler{}

func (p panicHandler) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	panic("check panic")
}

func (p panicHandler) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	panic("deliver panic")
}
