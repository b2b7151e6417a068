package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB. It does not know about the type
// of the data it holds and only deals with the raw bytes.
type Bucket struct {
	name   string
	prefix []byte
}

var _ barter.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of this bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket for queries.
// You can define a name here for queries, which is
// different than the bucket name used to prefix the data
func (b Bucket) Register(name string, r barter.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter
func (b Bucket) Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error) {
	switch mod {
	case barter.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []barter.Model{{Key: key, Value: value}}, nil
	case barter.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// DBKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get returns the raw value stored under given key, or nil.
func (b Bucket) Get(db barter.ReadOnlyKVStore, key []byte) ([]byte, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return raw, nil
}

// Has returns true if a value is stored under given key.
func (b Bucket) Has(db barter.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Set stores the raw value under given key.
func (b Bucket) Set(db barter.KVStore, key, value []byte) error {
	if err := db.Set(b.DBKey(key), value); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes the value stored under given key.
func (b Bucket) Delete(db barter.KVStore, key []byte) error {
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// queryPrefix returns all models whose key starts with given prefix.
func queryPrefix(db barter.ReadOnlyKVStore, prefix []byte) ([]barter.Model, error) {
	itr, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer itr.Release()

	var res []barter.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, barter.Pair(key, value))
	}
}

// prefixEnd returns the first key that does not have given prefix, or nil
// if there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
