package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/barter/errors"
)

// btreeDegree keeps nodes small. A cache holds the writes of a single block
// at most.
const btreeDegree = 2

// BTreeCacheable gives any KVStore a btree backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a cache that is flushed into the wrapped store on Write.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return newBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an in memory store without persistence, suitable for
// tests and genesis validation.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return newBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap keeps pending writes in a btree on top of a read only
// parent. Every write is also recorded in a batch that is applied to the
// parent on Write.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// newBTreeCacheWrap creates a cache over parent. Nested caches share the
// free list of their parent so discarded nodes are reused.
func newBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(btreeDegree, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap returns a savepoint on top of this cache.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return newBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch writing into this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all pending writes into the parent and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all pending writes.
func (b BTreeCacheWrap) Discard() {
	for b.tree.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.tree.ReplaceOrInsert(cacheItem{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.tree.ReplaceOrInsert(cacheItem{key: key, deleted: true})
	return b.batch.Delete(key)
}

// lookup returns the cached state of key. Only when found is false the
// parent must be asked.
func (b BTreeCacheWrap) lookup(key []byte) (item cacheItem, found bool, err error) {
	res := b.tree.Get(cacheItem{key: key})
	if res == nil {
		return item, false, nil
	}
	item, ok := res.(cacheItem)
	if !ok {
		return item, false, errors.Wrapf(errors.ErrDatabase, "unknown item in cache: %#v", res)
	}
	return item, true, nil
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	item, found, err := b.lookup(key)
	switch {
	case err != nil:
		return nil, err
	case !found:
		return b.parent.Get(key)
	case item.deleted:
		return nil, nil
	default:
		return item.value, nil
	}
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	item, found, err := b.lookup(key)
	switch {
	case err != nil:
		return false, err
	case !found:
		return b.parent.Has(key)
	default:
		return !item.deleted, nil
	}
}

// Iterator returns the merged content of the cache and the parent in the
// [start, end) range, in ascending key order.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(cachedRange(b.tree, start, end, false), parent, false)
}

// ReverseIterator is Iterator in descending key order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(cachedRange(b.tree, start, end, true), parent, true)
}

// cacheItem is a pending write. A deleted item hides the parent value.
type cacheItem struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = cacheItem{}

func (c cacheItem) Less(than btree.Item) bool {
	return bytes.Compare(c.key, than.(cacheItem).key) < 0
}

// cachedRange returns the pending writes with a key in [start, end). A nil
// bound leaves that side open.
func cachedRange(tree *btree.BTree, start, end []byte, reverse bool) []cacheItem {
	var items []cacheItem
	collect := func(i btree.Item) bool {
		items = append(items, i.(cacheItem))
		return true
	}

	switch {
	case start == nil && end == nil:
		tree.Ascend(collect)
	case start == nil:
		tree.AscendLessThan(cacheItem{key: end}, collect)
	case end == nil:
		tree.AscendGreaterOrEqual(cacheItem{key: start}, collect)
	default:
		tree.AscendRange(cacheItem{key: start}, cacheItem{key: end}, collect)
	}

	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}
