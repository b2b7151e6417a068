package codec

import (
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	raw, err := NewEncoder().
		Bytes(1, []byte("maker")).
		Uint64(2, 123).
		Int64(3, -300).
		Bool(4, true).
		Uint64(5, 0).
		String(6, "").
		Result()
	require.NoError(t, err)

	got := map[int]interface{}{}
	err = Decode(raw, func(f Field) error {
		switch f.Num {
		case 1:
			b, err := f.Bytes()
			got[1] = string(b)
			return err
		case 2:
			v, err := f.Uint64()
			got[2] = v
			return err
		case 3:
			v, err := f.Int64()
			got[3] = v
			return err
		case 4:
			v, err := f.Bool()
			got[4] = v
			return err
		}
		t.Fatalf("unexpected field %d", f.Num)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[int]interface{}{
		1: "maker",
		2: uint64(123),
		3: int64(-300),
		4: true,
	}, got)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string][]byte{
		"truncated length": {0x0a, 0x05, 'a'},
		"unsupported wire": {0x0d, 0, 0, 0, 0},
		"truncated varint": {0x10, 0xff},
		"truncated key":    {0xff},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Decode(raw, func(Field) error { return nil })
			if !errors.ErrInput.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestFieldWireMismatch(t *testing.T) {
	raw, err := NewEncoder().Uint64(1, 7).Result()
	require.NoError(t, err)
	err = Decode(raw, func(f Field) error {
		_, err := f.Bytes()
		return err
	})
	assert.True(t, errors.ErrInput.Is(err))
}
