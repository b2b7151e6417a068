package gconf

import (
	"sort"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Initializer fulfils the barter.Initializer interface to load configuration
// of all registered packages from the genesis file.
type Initializer struct {
	confs map[string]func() Configuration
}

var _ barter.Initializer = (*Initializer)(nil)

// NewInitializer returns an initializer with no packages registered.
func NewInitializer() *Initializer {
	return &Initializer{confs: make(map[string]func() Configuration)}
}

// Register declares that the genesis must contain a configuration for given
// package. New returns an empty instance the configuration is decoded into.
func (i *Initializer) Register(pkg string, new func() Configuration) *Initializer {
	if _, ok := i.confs[pkg]; ok {
		panic("gconf: package registered twice: " + pkg)
	}
	i.confs[pkg] = new
	return i
}

// FromGenesis will parse the configuration of every registered package and
// save it to the database.
func (i *Initializer) FromGenesis(opts barter.Options, db barter.KVStore) error {
	pkgs := make([]string, 0, len(i.confs))
	for pkg := range i.confs {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	for _, pkg := range pkgs {
		if err := InitConfig(db, opts, pkg, i.confs[pkg]()); err != nil {
			return errors.Wrapf(err, "package %s", pkg)
		}
	}
	return nil
}
