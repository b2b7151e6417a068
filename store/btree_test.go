package store

import (
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest/assert"
)

func memStoreConstructor() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCache(t *testing.T) {
	RunStoreTests(t, memStoreConstructor)
}

func TestBTreeDiscardLeavesParentUntouched(t *testing.T) {
	base := MemStore()
	assert.Nil(t, base.Set([]byte("vault"), []byte("40")))

	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("vault"), []byte("0")))
	assert.Nil(t, cache.Set([]byte("escrow"), []byte("record")))
	assert.Nil(t, cache.Delete([]byte("vault")))
	cache.Discard()

	got, err := base.Get([]byte("vault"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("40"), got)
	has, err := base.Has([]byte("escrow"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}

func TestCacheIteratorSkipsDeleted(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "b", "c"} {
		assert.Nil(t, base.Set([]byte(k), []byte(k)))
	}
	cache := base.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("b")))
	assert.Nil(t, cache.Set([]byte("d"), []byte("d")))

	it, err := cache.Iterator(nil, nil)
	assert.Nil(t, err)
	defer it.Release()

	var keys []string
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"a", "c", "d"}, keys)
}
