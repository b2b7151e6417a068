package barter

import (
	"fmt"

	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
)

const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

// QueryHandler is anything that can process ABCI queries
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister is a function that adds some handlers
// to this router
type QueryRegister func(QueryRouter)

// QueryRouter allows us to register many query handlers
// to different paths and then direct each query
// to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll registers a number of QueryRegister at once
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new Handler for the given path.
// panics if another Handler was already registered
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("Re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path.
// Returns nil if no handler is registered.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// ResultSet is the list of keys or values returned by a query. It is
// protobuf encoded as a repeated bytes field (1).
type ResultSet struct {
	Results [][]byte
}

// Marshal encodes the set.
func (r ResultSet) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	for _, res := range r.Results {
		enc.Bytes(1, res)
	}
	return enc.Result()
}

// Unmarshal decodes the set.
func (r *ResultSet) Unmarshal(raw []byte) error {
	r.Results = nil
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		b, err := f.Bytes()
		if err != nil {
			return err
		}
		r.Results = append(r.Results, b)
		return nil
	})
}

// QueryResults splits given models into the key and value result sets as
// returned in an ABCI query response.
func QueryResults(models []Model) (keys, values []byte, err error) {
	var ks, vs ResultSet
	for _, m := range models {
		ks.Results = append(ks.Results, m.Key)
		vs.Results = append(vs.Results, m.Value)
	}
	if keys, err = ks.Marshal(); err != nil {
		return nil, nil, errors.Wrap(err, "keys")
	}
	if values, err = vs.Marshal(); err != nil {
		return nil, nil, errors.Wrap(err, "values")
	}
	return keys, values, nil
}
