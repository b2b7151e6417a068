package sigs

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
)

type router map[string]barter.Handler

func (r router) Handle(path string, h barter.Handler) { r[path] = h }

func TestBumpSequence(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()
	unknown := crypto.GenPrivKeyEd25519().PublicKey()

	cases := map[string]struct {
		initSeq   int64
		signer    *crypto.PublicKey
		increment uint32
		wantErr   *errors.Error
		wantSeq   int64
	}{
		"increment by one keeps the sequence": {
			initSeq:   7,
			signer:    pub,
			increment: 1,
			wantSeq:   7,
		},
		"increment by many": {
			initSeq:   7,
			signer:    pub,
			increment: 100,
			wantSeq:   106,
		},
		"too big increment": {
			initSeq:   7,
			signer:    pub,
			increment: maxSequenceIncrement + 1,
			wantErr:   errors.ErrMsg,
			wantSeq:   7,
		},
		"zero increment": {
			initSeq: 7,
			signer:  pub,
			wantErr: errors.ErrMsg,
			wantSeq: 7,
		},
		"signer without sequence": {
			initSeq:   7,
			signer:    unknown,
			increment: 2,
			wantErr:   errors.ErrNotFound,
			wantSeq:   7,
		},
		"overflow": {
			initSeq:   maxSequenceValue - 10,
			signer:    pub,
			increment: 20,
			wantErr:   errors.ErrOverflow,
			wantSeq:   maxSequenceValue - 10,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewBucket()
			assert.Nil(t, b.Save(db, &UserData{Pubkey: pub, Sequence: tc.initSeq}))

			rt := make(router)
			RegisterRoutes(rt, &weavetest.Auth{Signer: tc.signer.Condition()})
			h := rt[BumpSequenceMsg{}.Path()]
			tx := &weavetest.Tx{Msg: &BumpSequenceMsg{Increment: tc.increment}}

			_, err := h.Check(nil, db, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}
			_, err = h.Deliver(nil, db, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}

			n, err := NextNonce(db, pub.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSeq, n)
		})
	}
}
