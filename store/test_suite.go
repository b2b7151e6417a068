package store

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest/assert"
)

// TestStoreConstructor returns a fresh, empty store and a function releasing
// its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// RunStoreTests runs the behaviour every CacheableKVStore implementation must
// provide. Each subtest gets its own store from constructor.
func RunStoreTests(t *testing.T, constructor TestStoreConstructor) {
	tests := map[string]func(*testing.T, CacheableKVStore){
		"nested savepoints":     testNestedSavepoints,
		"cache overlays parent": testCacheOverlay,
		"iteration":             testIteration,
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			base, cleanup := constructor()
			defer cleanup()
			fn(t, base)
		})
	}
}

// testNestedSavepoints mirrors how a transaction is processed: a block level
// wrap, a transaction level wrap inside it and a failing handler level wrap
// that is discarded.
func testNestedSavepoints(t *testing.T, base CacheableKVStore) {
	maker, vault, record := []byte("maker"), []byte("vault"), []byte("record")
	assert.Nil(t, base.Set(maker, []byte("100")))

	block := base.CacheWrap()
	tx := block.CacheWrap()
	assert.Nil(t, tx.Set(maker, []byte("60")))
	assert.Nil(t, tx.Set(vault, []byte("40")))

	failing := tx.CacheWrap()
	assert.Nil(t, failing.Set(record, []byte("open")))
	assert.Nil(t, failing.Delete(vault))
	expectValue(t, failing, vault, nil)
	failing.Discard()

	expectValue(t, tx, record, nil)
	expectValue(t, tx, vault, []byte("40"))
	expectValue(t, block, maker, []byte("100"))

	assert.Nil(t, tx.Write())
	expectValue(t, block, maker, []byte("60"))
	expectValue(t, base, maker, []byte("100"))
	expectValue(t, base, vault, nil)

	assert.Nil(t, block.Write())
	expectValue(t, base, maker, []byte("60"))
	expectValue(t, base, vault, []byte("40"))
	expectValue(t, base, record, nil)
}

func testCacheOverlay(t *testing.T, base CacheableKVStore) {
	cases := []struct {
		parent []Op
		child  []Op
		// Value nil means the key must be absent.
		inParent []Model
		inChild  []Model
	}{
		{
			parent:   []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("b"), []byte("2"))},
			child:    []Op{SetOp([]byte("a"), []byte("11")), SetOp([]byte("c"), []byte("3")), DelOp([]byte("b"))},
			inParent: []Model{Pair([]byte("a"), []byte("1")), Pair([]byte("b"), []byte("2")), Pair([]byte("c"), nil)},
			inChild:  []Model{Pair([]byte("a"), []byte("11")), Pair([]byte("b"), nil), Pair([]byte("c"), []byte("3"))},
		},
		{
			// deleting and setting again within the child keeps the new value
			parent:   []Op{SetOp([]byte("d"), []byte("4"))},
			child:    []Op{DelOp([]byte("d")), SetOp([]byte("d"), []byte("44")), DelOp([]byte("e"))},
			inParent: []Model{Pair([]byte("d"), []byte("4")), Pair([]byte("e"), nil)},
			inChild:  []Model{Pair([]byte("d"), []byte("44")), Pair([]byte("e"), nil)},
		},
	}

	for _, tc := range cases {
		for _, op := range tc.parent {
			assert.Nil(t, op.Apply(base))
		}
		child := base.CacheWrap()
		for _, op := range tc.child {
			assert.Nil(t, op.Apply(child))
		}
		for _, m := range tc.inParent {
			expectValue(t, base, m.Key, m.Value)
		}
		for _, m := range tc.inChild {
			expectValue(t, child, m.Key, m.Value)
		}
		assert.Nil(t, child.Write())
		for _, m := range tc.inChild {
			expectValue(t, base, m.Key, m.Value)
		}
	}
}

// testIteration applies a random but reproducible sequence of writes to the
// parent and to a cache on top of it and compares every range scan of the
// cache with a plain map holding the same writes.
func testIteration(t *testing.T, base CacheableKVStore) {
	r := rand.New(rand.NewSource(42))
	// A small key space makes overwrites and deletes of existing keys
	// frequent.
	keys := make([][]byte, 64)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("key-%03d", r.Intn(1000)))
	}

	want := make(map[string][]byte)
	apply := func(db SetDeleter, n int) {
		for i := 0; i < n; i++ {
			k := keys[r.Intn(len(keys))]
			if r.Intn(4) == 0 {
				assert.Nil(t, db.Delete(k))
				delete(want, string(k))
				continue
			}
			v := []byte(fmt.Sprintf("value-%d", r.Int()))
			assert.Nil(t, db.Set(k, v))
			want[string(k)] = v
		}
	}

	apply(base, 80)
	cache := base.CacheWrap()
	apply(cache, 80)

	sorted := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		if !seen[string(k)] {
			seen[string(k)] = true
			sorted = append(sorted, string(k))
		}
	}
	sort.Strings(sorted)

	bounds := [][2][]byte{
		{nil, nil},
		{[]byte(sorted[5]), nil},
		{nil, []byte(sorted[len(sorted)-5])},
		{[]byte(sorted[3]), []byte(sorted[20])},
		{[]byte("key-"), []byte("key-5")},
	}
	for _, b := range bounds {
		expected := expectedRange(want, b[0], b[1])
		it, err := cache.Iterator(b[0], b[1])
		assert.Nil(t, err)
		expectIterator(t, it, expected)

		it, err = cache.ReverseIterator(b[0], b[1])
		assert.Nil(t, err)
		expectIterator(t, it, reverse(expected))
	}

	// Writing the cache must leave the parent with the very same content.
	assert.Nil(t, cache.Write())
	it, err := base.Iterator(nil, nil)
	assert.Nil(t, err)
	expectIterator(t, it, expectedRange(want, nil, nil))
}

func expectValue(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

// expectedRange returns the content of the reference map in the
// [start, end) range, sorted by key.
func expectedRange(content map[string][]byte, start, end []byte) []Model {
	var res []Model
	for k, v := range content {
		key := []byte(k)
		if start != nil && bytes.Compare(key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(key, end) >= 0 {
			continue
		}
		res = append(res, Pair(key, v))
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func expectIterator(t testing.TB, it Iterator, want []Model) {
	t.Helper()
	defer it.Release()
	for i, m := range want {
		key, value, err := it.Next()
		assert.Nil(t, err)
		if !bytes.Equal(m.Key, key) {
			t.Fatalf("entry %d: want key %q, got %q", i, m.Key, key)
		}
		assert.Equal(t, m.Value, value)
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want ErrIteratorDone after %d entries, got %+v", len(want), err)
	}
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}
