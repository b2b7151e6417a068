package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestCoinArithmetic(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		sum     Coin
		diff    Coin
		sumErr  *errors.Error
		diffErr *errors.Error
	}{
		"same currency": {
			a:    NewCoin(10, "IOV"),
			b:    NewCoin(4, "IOV"),
			sum:  NewCoin(14, "IOV"),
			diff: NewCoin(6, "IOV"),
		},
		"empty coin is neutral": {
			a:    NewCoin(10, "IOV"),
			b:    Coin{},
			sum:  NewCoin(10, "IOV"),
			diff: NewCoin(10, "IOV"),
		},
		"different currency": {
			a:       NewCoin(10, "IOV"),
			b:       NewCoin(1, "ETH"),
			sumErr:  errors.ErrCurrency,
			diffErr: errors.ErrCurrency,
		},
		"subtract below zero": {
			a:       NewCoin(3, "IOV"),
			b:       NewCoin(4, "IOV"),
			sum:     NewCoin(7, "IOV"),
			diffErr: errors.ErrInsufficientAmount,
		},
		"overflow": {
			a:      NewCoin(math.MaxUint64, "IOV"),
			b:      NewCoin(1, "IOV"),
			sumErr: errors.ErrOverflow,
			diff:   NewCoin(math.MaxUint64-1, "IOV"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			sum, err := tc.a.Add(tc.b)
			if !tc.sumErr.Is(err) {
				t.Fatalf("unexpected add error: %s", err)
			}
			if tc.sumErr == nil {
				assert.Equal(t, tc.sum, sum)
			}
			diff, err := tc.a.Subtract(tc.b)
			if !tc.diffErr.Is(err) {
				t.Fatalf("unexpected subtract error: %s", err)
			}
			if tc.diffErr == nil {
				assert.Equal(t, tc.diff, diff)
			}
		})
	}
}

func TestCoinHumanFormat(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr *errors.Error
	}{
		"valid":           {raw: "42 IOV", want: NewCoin(42, "IOV")},
		"no space":        {raw: "7ETH", want: NewCoin(7, "ETH")},
		"lowercase":       {raw: "7 eth", wantErr: errors.ErrInput},
		"negative":        {raw: "-7 ETH", wantErr: errors.ErrInput},
		"fractional":      {raw: "1.5 ETH", wantErr: errors.ErrInput},
		"amount overflow": {raw: "99999999999999999999 ETH", wantErr: errors.ErrOverflow},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
				assert.Equal(t, tc.want, mustParse(t, got.String()))
			}
		})
	}
}

func mustParse(t testing.TB, raw string) Coin {
	t.Helper()
	c, err := ParseHumanFormat(raw)
	if err != nil {
		t.Fatalf("cannot parse %q: %s", raw, err)
	}
	return c
}

func TestCoinJSON(t *testing.T) {
	var human, object Coin
	assert.Nil(t, json.Unmarshal([]byte(`"5 IOV"`), &human))
	assert.Nil(t, json.Unmarshal([]byte(`{"Ticker": "IOV", "Amount": 5}`), &object))
	assert.Equal(t, NewCoin(5, "IOV"), human)
	assert.Equal(t, human, object)
}

func TestCoinMarshal(t *testing.T) {
	c := NewCoin(1234, "ABC")
	raw, err := c.Marshal()
	assert.Nil(t, err)
	var got Coin
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, c, got)
}
