package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      barter.Marshaller
}

// TestGenCmd generates sample binary and json encodings
// of various objects for client libraries to test against.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	for _, ex := range examples {
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "json %s", ex.Filename)
		}
		jsFile := filepath.Join(outdir, ex.Filename+".json")
		if err := ioutil.WriteFile(jsFile, js, 0644); err != nil {
			return errors.Wrap(err, jsFile)
		}

		bin, err := ex.Obj.Marshal()
		if err != nil {
			return errors.Wrapf(err, "marshal %s", ex.Filename)
		}
		binFile := filepath.Join(outdir, ex.Filename+".bin")
		if err := ioutil.WriteFile(binFile, bin, 0644); err != nil {
			return errors.Wrap(err, binFile)
		}
	}
	return nil
}
