package token

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/gconf"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
	"github.com/iov-one/barter/x/cash"
)

type authorizeAll struct{}

func (authorizeAll) Authorizes(barter.Address) bool { return true }

type authorizeOne struct{ addr barter.Address }

func (a authorizeOne) Authorizes(addr barter.Address) bool { return a.addr.Equals(addr) }

type denyHook struct{ allowed barter.Address }

func (h denyHook) BeforeTransfer(db barter.ReadOnlyKVStore, mint, owner barter.Address) error {
	if owner.Equals(h.allowed) {
		return nil
	}
	return errors.Wrap(errors.ErrUnauthorized, "not allowed")
}

type fixture struct {
	db        barter.CacheableKVStore
	ctrl      *BaseController
	cash      cash.Controller
	authority barter.Address
	mint      barter.Address
}

func newFixture(t testing.TB, reserve coin.Coin, hook TransferHook) *fixture {
	t.Helper()
	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, "token", &Configuration{AccountReserve: reserve}))
	cashctrl := cash.NewController()
	ctrl := NewController(cashctrl, hook)
	authority := weavetest.NewAddress()
	mint, err := ctrl.CreateMint(db, authority, "AAA", 6, hook != nil)
	assert.Nil(t, err)
	return &fixture{db: db, ctrl: ctrl, cash: cashctrl, authority: authority, mint: mint}
}

func (f *fixture) account(t testing.TB, owner barter.Address, amount uint64) barter.Address {
	t.Helper()
	if err := f.cash.CoinMint(f.db, owner, coin.NewCoin(10, "SOL")); err != nil {
		t.Fatalf("cannot fund owner: %s", err)
	}
	addr, err := f.ctrl.EnsureAssociated(f.db, owner, owner, f.mint)
	assert.Nil(t, err)
	if amount > 0 {
		assert.Nil(t, f.ctrl.MintTo(f.db, authorizeOne{f.authority}, addr, amount))
	}
	return addr
}

func TestCreateMint(t *testing.T) {
	f := newFixture(t, coin.Coin{}, nil)
	_, err := f.ctrl.CreateMint(f.db, f.authority, "AAA", 6, false)
	assert.IsErr(t, errors.ErrDuplicate, err)

	other, err := f.ctrl.CreateMint(f.db, f.authority, "BBB", 6, false)
	assert.Nil(t, err)
	if other.Equals(f.mint) {
		t.Fatal("mints of different symbols must not share an address")
	}

	_, err = f.ctrl.CreateMint(f.db, f.authority, "lower", 6, false)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestMintTo(t *testing.T) {
	f := newFixture(t, coin.Coin{}, nil)
	acc := f.account(t, weavetest.NewAddress(), 50)

	err := f.ctrl.MintTo(f.db, authorizeOne{weavetest.NewAddress()}, acc, 1)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.ctrl.MintTo(f.db, authorizeOne{f.authority}, acc, 25))
	bal, err := f.ctrl.Balance(f.db, acc)
	assert.Nil(t, err)
	assert.Equal(t, uint64(75), bal)

	var mint Mint
	assert.Nil(t, f.ctrl.mints.One(f.db, f.mint, &mint))
	assert.Equal(t, uint64(75), mint.Supply)
}

func TestEnsureAssociated(t *testing.T) {
	reserve := coin.NewCoin(2, "SOL")
	f := newFixture(t, reserve, nil)
	owner := weavetest.NewAddress()
	assert.Nil(t, f.cash.CoinMint(f.db, owner, coin.NewCoin(3, "SOL")))

	addr, err := f.ctrl.EnsureAssociated(f.db, owner, owner, f.mint)
	assert.Nil(t, err)
	want, err := AssociatedAddress(owner, f.mint)
	assert.Nil(t, err)
	assert.Equal(t, want, addr)

	// Second call returns the same account and does not charge again.
	again, err := f.ctrl.EnsureAssociated(f.db, owner, owner, f.mint)
	assert.Nil(t, err)
	assert.Equal(t, addr, again)

	left, err := f.cash.Balance(f.db, owner)
	assert.Nil(t, err)
	if !left.Equals(coin.Coins{coin.NewCoinp(1, "SOL")}) {
		t.Fatalf("unexpected owner balance %v", left)
	}

	// Payer cannot afford the reserve of another account.
	_, err = f.ctrl.EnsureAssociated(f.db, owner, weavetest.NewAddress(), f.mint)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	_, err = f.ctrl.EnsureAssociated(f.db, owner, owner, weavetest.NewAddress())
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestTransfer(t *testing.T) {
	alice, bob := weavetest.NewAddress(), weavetest.NewAddress()

	cases := map[string]struct {
		auth      Authority
		amount    uint64
		otherMint bool
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"owner transfers": {
			auth:      authorizeOne{alice},
			amount:    30,
			wantAlice: 70,
			wantBob:   30,
		},
		"not the owner": {
			auth:      authorizeOne{bob},
			amount:    30,
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 100,
		},
		"insufficient": {
			auth:      authorizeOne{alice},
			amount:    101,
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 100,
		},
		"zero": {
			auth:      authorizeOne{alice},
			wantErr:   errors.ErrAmount,
			wantAlice: 100,
		},
		"different mint": {
			auth:      authorizeAll{},
			amount:    1,
			otherMint: true,
			wantErr:   ErrMintMismatch,
			wantAlice: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, coin.Coin{}, nil)
			from := f.account(t, alice, 100)
			to := f.account(t, bob, 0)
			if tc.otherMint {
				other, err := f.ctrl.CreateMint(f.db, f.authority, "OTHER", 0, false)
				assert.Nil(t, err)
				to, err = f.ctrl.EnsureAssociated(f.db, bob, bob, other)
				assert.Nil(t, err)
			}

			err := f.ctrl.Transfer(f.db, tc.auth, from, to, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			got, err := f.ctrl.Balance(f.db, from)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = f.ctrl.Balance(f.db, to)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestTransferHook(t *testing.T) {
	alice, bob := weavetest.NewAddress(), weavetest.NewAddress()
	f := newFixture(t, coin.Coin{}, denyHook{allowed: alice})
	a := f.account(t, alice, 10)
	b := f.account(t, bob, 10)

	assert.Nil(t, f.ctrl.Transfer(f.db, authorizeAll{}, a, b, 5))
	err := f.ctrl.Transfer(f.db, authorizeAll{}, b, a, 5)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Only the custodian of the source owner skips the hook.
	err = f.ctrl.Transfer(f.db, custodianOf{alice}, b, a, 5)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Nil(t, f.ctrl.Transfer(f.db, custodianOf{bob}, b, a, 5))
}

// custodianOf authorizes everything but holds custody of one owner only.
type custodianOf struct{ owner barter.Address }

func (custodianOf) Authorizes(barter.Address) bool { return true }

func (c custodianOf) Custodies(owner barter.Address) bool { return c.owner.Equals(owner) }

func TestClose(t *testing.T) {
	reserve := coin.NewCoin(2, "SOL")
	f := newFixture(t, reserve, nil)
	owner, dest := weavetest.NewAddress(), weavetest.NewAddress()
	acc := f.account(t, owner, 5)

	err := f.ctrl.Close(f.db, authorizeOne{owner}, acc, dest)
	assert.IsErr(t, errors.ErrState, err)

	sink := f.account(t, weavetest.NewAddress(), 0)
	assert.Nil(t, f.ctrl.Transfer(f.db, authorizeOne{owner}, acc, sink, 5))

	err = f.ctrl.Close(f.db, authorizeOne{dest}, acc, dest)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.ctrl.Close(f.db, authorizeOne{owner}, acc, dest))
	_, err = f.ctrl.Account(f.db, acc)
	assert.IsErr(t, errors.ErrNotFound, err)

	got, err := f.cash.Balance(f.db, dest)
	assert.Nil(t, err)
	if !got.Equals(coin.Coins{&reserve}) {
		t.Fatalf("reserve not returned: %v", got)
	}
}
