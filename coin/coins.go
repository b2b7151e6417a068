package coin

import (
	"sort"

	"github.com/iov-one/barter/errors"
)

// Coins represents a set of coins, sorted by ticker with at most one coin of
// each currency and no zero values.
type Coins []*Coin

// CombineCoins creates a Coins containing all given coins.
// It will sort them and combine duplicates to produce
// a normalized form regardless of input.
func CombineCoins(cs ...Coin) (Coins, error) {
	var err error
	coins := make(Coins, 0)
	for _, c := range cs {
		coins, err = coins.Add(c)
		if err != nil {
			return nil, err
		}
	}
	if err := coins.Validate(); err != nil {
		return nil, err
	}
	return coins, nil
}

// Clone returns a copy that can be safely modified
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make([]*Coin, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return Coins(res)
}

// Add returns a new set with the holdings increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	res := cs.Clone()
	has, i := res.findCoin(c.Ticker)
	if has != nil {
		sum, err := has.Add(c)
		if err != nil {
			return nil, err
		}
		res[i] = &sum
		return res, nil
	}
	res = append(res, nil)
	copy(res[i+1:], res[i:])
	res[i] = &c
	return res, nil
}

// Subtract returns a new set with the holdings decreased by c. It fails
// with ErrInsufficientAmount rather than going negative.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	res := cs.Clone()
	has, i := res.findCoin(c.Ticker)
	if has == nil {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	diff, err := has.Subtract(c)
	if err != nil {
		return nil, err
	}
	if diff.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &diff
	return res, nil
}

// Combine will create a new Coins adding all the coins
// of s and o together.
func (cs Coins) Combine(o Coins) (Coins, error) {
	var err error
	res := cs.Clone()
	for _, c := range o {
		res, err = res.Add(*c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Contains returns true if there is at least that much
// coin in the Coins.
func (cs Coins) Contains(c Coin) bool {
	has, _ := cs.findCoin(c.Ticker)
	if has == nil {
		return c.IsZero()
	}
	return has.IsGTE(c)
}

// findCoin returns a coin and index that have this
// currency code.
//
// If there was a match, then result is non-nil, and the
// index is where it was. If there was no match, then
// result is nil, and index is where it should be
// (which may be between 0 and len(cs)).
func (cs Coins) findCoin(ticker string) (*Coin, int) {
	i := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= ticker
	})
	if i < len(cs) && cs[i].Ticker == ticker {
		return cs[i], i
	}
	return nil, i
}

// IsEmpty returns if nothing is in the set
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if all coins are equal and in the same order.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are valid, non zero, sorted and
// unique.
func (cs Coins) Validate() error {
	var last string
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrAmount, "zero coin in set")
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrCurrency, "coins not sorted or not unique")
		}
		last = c.Ticker
	}
	return nil
}
