package cash

import (
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the set of native coins owned by an address. The address is the
// key the wallet is stored under.
type Wallet struct {
	Coins coin.Coins
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires that all coins are in alphabetical
func (w *Wallet) Validate() error {
	return errors.Wrap(w.Coins.Validate(), "coins")
}

func (w *Wallet) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	for _, c := range w.Coins {
		enc.Message(1, c)
	}
	return enc.Result()
}

func (w *Wallet) Unmarshal(raw []byte) error {
	*w = Wallet{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		b, err := f.Bytes()
		if err != nil {
			return err
		}
		var c coin.Coin
		if err := c.Unmarshal(b); err != nil {
			return err
		}
		w.Coins = append(w.Coins, &c)
		return nil
	})
}

// NewBucket returns a bucket storing wallets by owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName)
}
