package escrow

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/weavetest"
	"github.com/iov-one/barter/weavetest/assert"
)

func TestEscrowRecordLayout(t *testing.T) {
	e := Escrow{
		Seed:       123,
		Maker:      weavetest.NewAddress(),
		MintA:      weavetest.NewAddress(),
		MintB:      weavetest.NewAddress(),
		Receive:    90,
		UnlockTime: 1700000300,
		Bump:       254,
	}
	raw, err := e.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, RecordSize, len(raw))
	assert.Equal(t, 129, len(raw))

	assert.Equal(t, discriminator, raw[:8])
	assert.Equal(t, uint64(123), binary.LittleEndian.Uint64(raw[8:16]))
	assert.Equal(t, []byte(e.Maker), raw[16:48])
	assert.Equal(t, []byte(e.MintA), raw[48:80])
	assert.Equal(t, []byte(e.MintB), raw[80:112])
	assert.Equal(t, uint64(90), binary.LittleEndian.Uint64(raw[112:120]))
	assert.Equal(t, int64(1700000300), int64(binary.LittleEndian.Uint64(raw[120:128])))
	assert.Equal(t, byte(254), raw[128])

	var got Escrow
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, e, got)
}

func TestEscrowNegativeUnlockTime(t *testing.T) {
	e := Escrow{
		Maker:      weavetest.NewAddress(),
		MintA:      weavetest.NewAddress(),
		MintB:      weavetest.NewAddress(),
		Receive:    1,
		UnlockTime: -5,
	}
	raw, err := e.Marshal()
	assert.Nil(t, err)
	var got Escrow
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, barter.UnixTime(-5), got.UnlockTime)
}

func TestEscrowUnmarshalRejects(t *testing.T) {
	valid, err := (&Escrow{
		Maker:   weavetest.NewAddress(),
		MintA:   weavetest.NewAddress(),
		MintB:   weavetest.NewAddress(),
		Receive: 1,
	}).Marshal()
	assert.Nil(t, err)

	foreign := append([]byte(nil), valid...)
	foreign[0] ^= 0xff

	cases := map[string][]byte{
		"empty":                 nil,
		"truncated":             valid[:RecordSize-1],
		"trailing bytes":        append(append([]byte(nil), valid...), 0),
		"another discriminator": foreign,
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			var e Escrow
			assert.IsErr(t, errors.ErrModel, e.Unmarshal(raw))
		})
	}
}

func TestEscrowValidate(t *testing.T) {
	mint := weavetest.NewAddress()
	cases := map[string]struct {
		escrow Escrow
		field  string
		want   *errors.Error
	}{
		"missing maker": {
			escrow: Escrow{MintA: mint, MintB: weavetest.NewAddress(), Receive: 1},
			field:  "Maker",
			want:   errors.ErrInput,
		},
		"same mints": {
			escrow: Escrow{Maker: weavetest.NewAddress(), MintA: mint, MintB: mint, Receive: 1},
			field:  "MintB",
			want:   errors.ErrInput,
		},
		"zero receive": {
			escrow: Escrow{Maker: weavetest.NewAddress(), MintA: mint, MintB: weavetest.NewAddress()},
			field:  "Receive",
			want:   errors.ErrAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.FieldError(t, tc.escrow.Validate(), tc.field, tc.want)
		})
	}
}

func TestEscrowAddressDerivation(t *testing.T) {
	maker := weavetest.NewAddress()
	a1, bump, err := EscrowAddress(maker, 1)
	assert.Nil(t, err)
	again, bump2, err := EscrowAddress(maker, 1)
	assert.Nil(t, err)
	assert.Equal(t, a1, again)
	assert.Equal(t, bump, bump2)

	a2, _, err := EscrowAddress(maker, 2)
	assert.Nil(t, err)
	if a1.Equals(a2) {
		t.Fatal("different seeds must derive different addresses")
	}
	other, _, err := EscrowAddress(weavetest.NewAddress(), 1)
	assert.Nil(t, err)
	if a1.Equals(other) {
		t.Fatal("different makers must derive different addresses")
	}

	e := Escrow{Seed: 1, Maker: maker, Bump: bump}
	got, err := e.address()
	assert.Nil(t, err)
	assert.Equal(t, a1, got)
}
