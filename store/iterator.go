package store

import (
	"bytes"

	"github.com/iov-one/barter/errors"
)

// cacheIterator combines the cached items with the results of the parent,
// taking into consideration overwrites and deletes.
type cacheIterator struct {
	items   []cacheItem
	parent  Iterator
	reverse bool

	// lookahead of the parent iterator
	parentKey   []byte
	parentValue []byte
	parentDone  bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []cacheItem, parent Iterator, reverse bool) (*cacheIterator, error) {
	it := &cacheIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return it, nil
}

func (i *cacheIterator) advanceParent() error {
	k, v, err := i.parent.Next()
	switch {
	case err == nil:
		i.parentKey, i.parentValue = k, v
	case errors.ErrIteratorDone.Is(err):
		i.parentKey, i.parentValue, i.parentDone = nil, nil, true
	default:
		return err
	}
	return nil
}

// before returns true if key a is returned before key b.
func (i *cacheIterator) before(a, b []byte) bool {
	cmp := bytes.Compare(a, b)
	if i.reverse {
		return cmp > 0
	}
	return cmp < 0
}

// Next returns the next key in iteration order, skipping everything that was
// deleted in the cache.
func (i *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if len(i.items) == 0 {
			if i.parentDone {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
			}
			key, value = i.parentKey, i.parentValue
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		}

		item := i.items[0]
		if !i.parentDone && i.before(i.parentKey, item.key) {
			key, value = i.parentKey, i.parentValue
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		}

		// Cached item shadows the parent value of the same key.
		if !i.parentDone && bytes.Equal(i.parentKey, item.key) {
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
		}
		i.items = i.items[1:]
		if !item.deleted {
			return item.key, item.value, nil
		}
	}
}

// Release releases the Iterator.
func (i *cacheIterator) Release() {
	i.items = nil
	i.parent.Release()
}
