package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestMoveCoins(t *testing.T) {
	alice, bob := weavetest.NewAddress(), weavetest.NewAddress()

	cases := map[string]struct {
		initial   coin.Coin
		move      coin.Coin
		wantErr   *errors.Error
		wantAlice coin.Coins
		wantBob   coin.Coins
	}{
		"partial move": {
			initial:   coin.NewCoin(100, "IOV"),
			move:      coin.NewCoin(40, "IOV"),
			wantAlice: coin.Coins{coin.NewCoinp(60, "IOV")},
			wantBob:   coin.Coins{coin.NewCoinp(40, "IOV")},
		},
		"move everything": {
			initial: coin.NewCoin(100, "IOV"),
			move:    coin.NewCoin(100, "IOV"),
			wantBob: coin.Coins{coin.NewCoinp(100, "IOV")},
		},
		"insufficient funds": {
			initial:   coin.NewCoin(10, "IOV"),
			move:      coin.NewCoin(11, "IOV"),
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: coin.Coins{coin.NewCoinp(10, "IOV")},
		},
		"other currency": {
			initial:   coin.NewCoin(10, "IOV"),
			move:      coin.NewCoin(1, "ETH"),
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: coin.Coins{coin.NewCoinp(10, "IOV")},
		},
		"zero amount": {
			initial:   coin.NewCoin(10, "IOV"),
			move:      coin.NewCoin(0, "IOV"),
			wantErr:   errors.ErrAmount,
			wantAlice: coin.Coins{coin.NewCoinp(10, "IOV")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.CoinMint(db, alice, tc.initial))

			err := ctrl.MoveCoins(db, alice, bob, tc.move)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			assertBalance(t, ctrl, db, alice, tc.wantAlice)
			assertBalance(t, ctrl, db, bob, tc.wantBob)
		})
	}
}

func assertBalance(t testing.TB, ctrl Controller, db barter.ReadOnlyKVStore, addr barter.Address, want coin.Coins) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	if want.IsEmpty() {
		assert.IsErr(t, errors.ErrNotFound, err)
		return
	}
	assert.Nil(t, err)
	if !got.Equals(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestSendHandler(t *testing.T) {
	alice, bob := weavetest.NewCondition(), weavetest.NewAddress()

	cases := map[string]struct {
		signer  barter.Condition
		msg     *SendMsg
		wantErr *errors.Error
	}{
		"valid transfer": {
			signer: alice,
			msg:    &SendMsg{Source: alice.Address(), Destination: bob, Amount: coin.NewCoin(5, "IOV")},
		},
		"not signed by the source": {
			signer:  weavetest.NewCondition(),
			msg:     &SendMsg{Source: alice.Address(), Destination: bob, Amount: coin.NewCoin(5, "IOV")},
			wantErr: errors.ErrUnauthorized,
		},
		"invalid message": {
			signer:  alice,
			msg:     &SendMsg{Source: alice.Address(), Destination: bob},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.CoinMint(db, alice.Address(), coin.NewCoin(10, "IOV")))

			h := NewSendHandler(&weavetest.Auth{Signer: tc.signer}, ctrl)
			tx := &weavetest.Tx{Msg: tc.msg}
			if _, err := h.Check(nil, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %s", err)
			}
			if _, err := h.Deliver(nil, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %s", err)
			}
			if tc.wantErr == nil {
				assertBalance(t, ctrl, db, bob, coin.Coins{coin.NewCoinp(5, "IOV")})
			}
		})
	}
}

func TestGenesis(t *testing.T) {
	addr := weavetest.NewAddress()
	genesis := fmt.Sprintf(`{"cash": [{"address": "%s", "coins": ["7 IOV", {"Ticker": "ETH", "Amount": 3}]}]}`, addr)
	var opts barter.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))
	assertBalance(t, NewController(), db, addr, coin.Coins{coin.NewCoinp(3, "ETH"), coin.NewCoinp(7, "IOV")})
}

func TestWalletMarshal(t *testing.T) {
	w := Wallet{Coins: coin.Coins{coin.NewCoinp(3, "ETH"), coin.NewCoinp(7, "IOV")}}
	raw, err := w.Marshal()
	assert.Nil(t, err)
	var got Wallet
	assert.Nil(t, got.Unmarshal(raw))
	if !got.Coins.Equals(w.Coins) {
		t.Fatalf("want %v, got %v", w.Coins, got.Coins)
	}
}
