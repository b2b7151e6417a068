package whitelist

import (
	"testing"
	"time"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/gconf"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestAddRemove(t *testing.T) {
	admin := weavetest.NewCondition()
	user := weavetest.NewAddress()

	cases := map[string]struct {
		signer     barter.Condition
		msgs       []barter.Msg
		wantErr    *errors.Error
		wantListed bool
	}{
		"add": {
			signer:     admin,
			msgs:       []barter.Msg{&AddMsg{User: user}},
			wantListed: true,
		},
		"add twice": {
			signer:     admin,
			msgs:       []barter.Msg{&AddMsg{User: user}, &AddMsg{User: user}},
			wantErr:    errors.ErrDuplicate,
			wantListed: true,
		},
		"add and remove": {
			signer: admin,
			msgs:   []barter.Msg{&AddMsg{User: user}, &RemoveMsg{User: user}},
		},
		"remove absent": {
			signer:  admin,
			msgs:    []barter.Msg{&RemoveMsg{User: user}},
			wantErr: errors.ErrNotFound,
		},
		"not an admin": {
			signer:  weavetest.NewCondition(),
			msgs:    []barter.Msg{&AddMsg{User: user}},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, gconf.Save(db, "whitelist", &Configuration{Admin: admin.Address()}))
			ctx := weavetest.BlockContext(1, time.Now())
			handlers := map[string]barter.Handler{}
			RegisterRoutes(registry(handlers), &weavetest.Auth{Signer: tc.signer})

			var err error
			for _, msg := range tc.msgs {
				tx := &weavetest.Tx{Msg: msg}
				h := handlers[msg.Path()]
				if _, err = h.Check(ctx, db, tx); err != nil {
					break
				}
				if _, err = h.Deliver(ctx, db, tx); err != nil {
					break
				}
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}

			listed, err := IsWhitelisted(db, user)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantListed, listed)
		})
	}
}

type registry map[string]barter.Handler

func (r registry) Handle(path string, h barter.Handler) { r[path] = h }

func TestTransferHook(t *testing.T) {
	db := store.MemStore()
	user := weavetest.NewAddress()
	addr, bump, err := EntryAddress(user)
	assert.Nil(t, err)

	err = TransferHook{}.BeforeTransfer(db, weavetest.NewAddress(), user)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, NewBucket().Insert(db, addr, &Entry{Bump: bump}))
	assert.Nil(t, TransferHook{}.BeforeTransfer(db, weavetest.NewAddress(), user))
}

func TestEntryMarshal(t *testing.T) {
	for _, bump := range []byte{0, 1, 254, 255} {
		e := Entry{Bump: bump}
		raw, err := e.Marshal()
		assert.Nil(t, err)
		if len(raw) == 0 {
			t.Fatalf("empty encoding for bump %d", bump)
		}
		var got Entry
		assert.Nil(t, got.Unmarshal(raw))
		assert.Equal(t, bump, got.Bump)
	}
}

func TestEntryAddressIsDerived(t *testing.T) {
	user := weavetest.NewAddress()
	addr, bump, err := EntryAddress(user)
	assert.Nil(t, err)
	again, err := barter.DeriveAddress("whitelist", bump, []byte("whitelist"), user)
	assert.Nil(t, err)
	assert.Equal(t, addr, again)
	if barter.IsOnCurve(addr) {
		t.Fatal("entry address must not be a public key")
	}
}
