package x

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestChainAuth(t *testing.T) {
	maker := weavetest.NewCondition()
	taker := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	signed := &weavetest.CtxAuth{Key: "signed"}
	other := &weavetest.CtxAuth{Key: "other"}
	ctx := signed.SetConditions(context.Background(), taker, maker)

	cases := map[string]struct {
		auth     Authenticator
		wantMain barter.Condition
		wantAll  []barter.Condition
	}{
		"nothing authorized": {
			auth: ChainAuth(&weavetest.Auth{}, other),
		},
		"static signer first": {
			auth:     ChainAuth(&weavetest.Auth{Signer: maker}, signed),
			wantMain: maker,
			wantAll:  []barter.Condition{maker, taker, maker},
		},
		"context conditions keep their order": {
			auth:     ChainAuth(other, signed),
			wantMain: taker,
			wantAll:  []barter.Condition{taker, maker},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantMain, MainSigner(ctx, tc.auth))
			assert.Equal(t, tc.wantAll, tc.auth.GetConditions(ctx))
			for _, c := range tc.wantAll {
				assert.Equal(t, true, tc.auth.HasAddress(ctx, c.Address()))
			}
			assert.Equal(t, false, tc.auth.HasAddress(ctx, stranger.Address()))
		})
	}
}
