package whitelist

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/gconf"
)

const packageName = "whitelist"

// Configuration of the whitelist extension.
type Configuration struct {
	// Admin is the only address allowed to modify the list.
	Admin barter.Address `json:"admin"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	return errors.AppendField(nil, "Admin", c.Admin.Validate())
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.NewEncoder().Bytes(1, c.Admin).Result()
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		if f.Num == 1 {
			c.Admin, err = f.Bytes()
		}
		return err
	})
}

// LoadConfiguration returns the configuration stored in the database.
func LoadConfiguration(db barter.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// RegisterConfiguration declares that the genesis must configure this
// extension.
func RegisterConfiguration(ini *gconf.Initializer) {
	ini.Register(packageName, func() gconf.Configuration { return &Configuration{} })
}
