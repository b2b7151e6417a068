package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/gconf"
)

const packageName = "escrow"

// Configuration of the escrow extension.
type Configuration struct {
	// RecordReserve is paid by the maker for storing the offer. It is
	// returned to the maker once the offer is taken or refunded.
	RecordReserve coin.Coin `json:"record_reserve"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if c.RecordReserve.IsZero() {
		return nil
	}
	return errors.AppendField(nil, "RecordReserve", c.RecordReserve.Validate())
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.NewEncoder().Message(1, c.RecordReserve).Result()
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		b, err := f.Bytes()
		if err != nil {
			return err
		}
		return c.RecordReserve.Unmarshal(b)
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
