package token

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestHandlers(t *testing.T) {
	f := newFixture(t, coin.Coin{}, nil)
	alice := weavetest.NewCondition()
	authority := weavetest.NewCondition()
	assert.Nil(t, f.cash.CoinMint(f.db, alice.Address(), coin.NewCoin(1, "SOL")))

	rt := newRouter()
	RegisterRoutes(rt, &weavetest.Auth{Signers: []barter.Condition{alice, authority}}, f.ctrl)

	res := deliver(t, rt, f.db, &CreateMintMsg{Authority: authority.Address(), Symbol: "XYZ"})
	mint := barter.Address(res.Data)

	res = deliver(t, rt, f.db, &CreateAccountMsg{Payer: alice.Address(), Owner: alice.Address(), Mint: mint})
	acc := barter.Address(res.Data)

	deliver(t, rt, f.db, &MintToMsg{Account: acc, Amount: 42})
	bal, err := f.ctrl.Balance(f.db, acc)
	assert.Nil(t, err)
	assert.Equal(t, uint64(42), bal)

	bobAcc := f.account(t, weavetest.NewAddress(), 0)
	_, err = rt.Handler(TransferMsg{}.Path()).Deliver(nil, f.db, &weavetest.Tx{Msg: &TransferMsg{Source: acc, Destination: bobAcc, Amount: 1}})
	// bob's account is of another mint
	assert.IsErr(t, ErrMintMismatch, err)

	carol := weavetest.NewAddress()
	deliver(t, rt, f.db, &CreateAccountMsg{Payer: alice.Address(), Owner: carol, Mint: mint})
	carolAcc, err := AssociatedAddress(carol, mint)
	assert.Nil(t, err)
	deliver(t, rt, f.db, &TransferMsg{Source: acc, Destination: carolAcc, Amount: 42})
	deliver(t, rt, f.db, &CloseAccountMsg{Account: acc, Destination: alice.Address()})

	_, err = f.ctrl.Account(f.db, acc)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestCreateMintRequiresAuthority(t *testing.T) {
	f := newFixture(t, coin.Coin{}, nil)
	h := CreateMintHandler{auth: &weavetest.Auth{Signer: weavetest.NewCondition()}, ctrl: f.ctrl}
	tx := &weavetest.Tx{Msg: &CreateMintMsg{Authority: weavetest.NewAddress(), Symbol: "XYZ"}}
	_, err := h.Check(nil, f.db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

type router map[string]barter.Handler

func newRouter() router { return make(router) }

func (r router) Handle(path string, h barter.Handler) { r[path] = h }

func (r router) Handler(path string) barter.Handler { return r[path] }

func deliver(t testing.TB, r router, db barter.KVStore, msg barter.Msg) *barter.DeliverResult {
	t.Helper()
	tx := &weavetest.Tx{Msg: msg}
	h := r.Handler(msg.Path())
	if _, err := h.Check(nil, db, tx); err != nil {
		t.Fatalf("check %s: %s", msg.Path(), err)
	}
	res, err := h.Deliver(nil, db, tx)
	if err != nil {
		t.Fatalf("deliver %s: %s", msg.Path(), err)
	}
	return res
}
