package orm

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	barter.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operates on Models rather than
// raw bytes.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db barter.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists,
	// ErrNotFound otherwise.
	Has(db barter.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database, overwriting any previous
	// value.
	Put(db barter.KVStore, key []byte, m Model) error

	// Insert saves given model in the database. It returns ErrDuplicate
	// if an entity with given key already exists.
	Insert(db barter.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db barter.KVStore, key []byte) error

	// Register registers this bucket for queries under /name.
	Register(name string, r barter.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance storing its data under given
// bucket name.
func NewModelBucket(name string) ModelBucket {
	return &modelBucket{
		b: NewBucket(name),
	}
}

type modelBucket struct {
	b Bucket
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db barter.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

func (mb *modelBucket) Has(db barter.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.b.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db barter.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if err := mb.b.Set(db, key, raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Insert(db barter.KVStore, key []byte, m Model) error {
	switch err := mb.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%s %X", mb.b.name, key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return mb.Put(db, key, m)
}

func (mb *modelBucket) Delete(db barter.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Register(name string, r barter.QueryRouter) {
	mb.b.Register(name, r)
}
