package utils

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the stack
	ok := barter.Pair([]byte("demo"), []byte("data"))
	// written by the handler
	nk := barter.Pair([]byte{1, 2, 3}, []byte{4, 5, 6})

	cases := map[string]struct {
		save    Savepoint
		handler *weavetest.Handler
		check   bool
		wantErr *errors.Error
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled, failure keeps the partial write": {
			save:    NewSavepoint(),
			handler: &weavetest.Handler{Writes: []barter.Model{nk}, CheckErr: errors.ErrHuman},
			check:   true,
			wantErr: errors.ErrHuman,
			written: [][]byte{ok.Key, nk.Key},
		},
		"check failure is rolled back": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.Handler{Writes: []barter.Model{nk}, CheckErr: errors.ErrHuman},
			check:   true,
			wantErr: errors.ErrHuman,
			written: [][]byte{ok.Key},
			missing: [][]byte{nk.Key},
		},
		"deliver failure is rolled back": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.Handler{Writes: []barter.Model{nk}, DeliverErr: errors.ErrInsufficientAmount},
			wantErr: errors.ErrInsufficientAmount,
			written: [][]byte{ok.Key},
			missing: [][]byte{nk.Key},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &weavetest.Handler{Writes: []barter.Model{nk}, DeliverErr: errors.ErrHuman},
			wantErr: errors.ErrHuman,
			written: [][]byte{ok.Key},
			missing: [][]byte{nk.Key},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.Handler{Writes: []barter.Model{nk}, DeliverErr: errors.ErrHuman},
			wantErr: errors.ErrHuman,
			written: [][]byte{ok.Key, nk.Key},
		},
		"success is written": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.Handler{Writes: []barter.Model{nk}},
			written: [][]byte{ok.Key, nk.Key},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			assert.Nil(t, kv.Set(ok.Key, ok.Value))

			ctx := context.Background()
			h := weavetest.Decorate(tc.handler, tc.save)
			var err error
			if tc.check {
				_, err = h.Check(ctx, kv, &weavetest.Tx{})
			} else {
				_, err = h.Deliver(ctx, kv, &weavetest.Tx{})
			}
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				assert.Nil(t, err)
				if !has {
					t.Errorf("missing key %x", k)
				}
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				assert.Nil(t, err)
				if has {
					t.Errorf("unexpected key %x", k)
				}
			}
		})
	}
}
