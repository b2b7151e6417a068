package weavetest

import (
	"context"
	"time"

	"github.com/iov-one/barter"
)

// ChainID is used by all contexts created by this package.
const ChainID = "test-chain"

// BlockContext returns a context as the application would prepare it for a
// block of given height and time.
func BlockContext(height int64, now time.Time) barter.Context {
	ctx := context.Background()
	ctx = barter.WithHeight(ctx, height)
	ctx = barter.WithChainID(ctx, ChainID)
	ctx = barter.WithBlockTime(ctx, now)
	return ctx
}
