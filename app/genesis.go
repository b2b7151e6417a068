package app

import (
	"github.com/iov-one/barter"
)

// ChainInitializers lets you initialize many extensions with one function.
// Initializers are called in the given order, aborting at the first error.
func ChainInitializers(inits ...barter.Initializer) barter.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []barter.Initializer
}

func (c chainInitializer) FromGenesis(opts barter.Options, kv barter.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
