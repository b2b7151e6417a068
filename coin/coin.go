package coin

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Coin is an amount of the native currency identified by its ticker. Native
// coins pay for the storage reserve of records and token accounts.
type Coin struct {
	Ticker string
	Amount uint64
}

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Amount: amount, Ticker: ticker}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// Add combines two coins.
// Returns error if they are of different
// currencies, or if the combination would cause
// an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	// A coin without a ticker and value has no influence on the result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", c.Ticker, o.Ticker)
	}
	if math.MaxUint64-c.Amount < o.Amount {
		return Coin{}, errors.ErrOverflow
	}
	c.Amount += o.Amount
	return c, nil
}

// Subtract given amount. Result cannot be negative.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if c.Amount < o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s is less than %s", c, o)
	}
	c.Amount -= o.Amount
	return c, nil
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Validate ensures the currency code is valid.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker)
	}
	return nil
}

func (c Coin) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		String(1, c.Ticker).
		Uint64(2, c.Amount).
		Result()
}

func (c *Coin) Unmarshal(raw []byte) error {
	*c = Coin{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			c.Ticker, err = f.String()
		case 2:
			c.Amount, err = f.Uint64()
		}
		return err
	})
}

func (c *Coin) UnmarshalJSON(raw []byte) error {
	// Prioritize human readable format that is a string in format
	// "<amount> <ticker>"
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		*c = parsed
		return err
	}

	// Fallback into the default unmarhaling. Because UnmarshalJSON method
	// is provided, we can no longer use Coin type for this.
	var coin struct {
		Ticker string
		Amount uint64
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return err
	}
	*c = Coin{Ticker: coin.Ticker, Amount: coin.Amount}
	return nil
}

// String provides a human readable representation of the coin that can be
// parsed back with ParseHumanFormat.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return strconv.FormatUint(c.Amount, 10) + " " + c.Ticker
}

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//   "<amount> <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	results := humanCoinFormatRx.FindStringSubmatch(h)
	if results == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := strconv.ParseUint(results[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount: %s", err)
	}
	return Coin{Ticker: results[2], Amount: amount}, nil
}

var humanCoinFormatRx = regexp.MustCompile(`^\s*(\d+)\s*([A-Z]{3,4})\s*$`)

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return fmt.Errorf("coin: %s", err)
	}
	*c = val
	return nil
}
