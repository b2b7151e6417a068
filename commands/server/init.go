package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/barter/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	flagIgnore  = "i"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func parseInitFlags(args []string) (bool, []string, error) {
	var ignore bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&ignore, flagIgnore, false, "overwrite an app_state already present in genesis")
	err := initFlags.Parse(args)
	return ignore, initFlags.Args(), err
}

// InitCmd adds the app_state produced by gen to the genesis file that
// `tendermint init` created under home. An existing app_state is only
// replaced when -i is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	ignore, rest, err := parseInitFlags(args)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := filepath.Join(home, "config", "genesis.json")
	doc, err := loadGenesis(genFile)
	if err != nil {
		return err
	}
	if state, ok := doc[appStateKey]; ok && !isEmptyState(state) && !ignore {
		return errors.Wrap(errors.ErrState, "genesis already has app_state, use -i to overwrite")
	}

	options, err := gen(rest)
	if err != nil {
		return errors.Wrap(err, "generate app_state")
	}
	doc[appStateKey] = options

	if err := saveGenesis(genFile, doc); err != nil {
		return err
	}
	logger.Info("App state written to genesis", "path", genFile)
	return nil
}

func isEmptyState(state json.RawMessage) bool {
	var v interface{}
	if err := json.Unmarshal(state, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return true
	case map[string]interface{}:
		return len(v) == 0
	}
	return false
}

func loadGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNotFound, err.Error())
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "genesis %s: %s", filename, err)
	}
	return doc, nil
}

func saveGenesis(filename string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal genesis")
	}
	return ioutil.WriteFile(filename, out, 0600)
}
