package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/weavetest/assert"
)

type testConfig struct {
	Text   string `json:"text"`
	Number uint64 `json:"number"`
}

func (c *testConfig) Validate() error {
	if c.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

func (c *testConfig) Marshal() ([]byte, error) {
	return codec.NewEncoder().String(1, c.Text).Uint64(2, c.Number).Result()
}

func (c *testConfig) Unmarshal(raw []byte) error {
	*c = testConfig{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			c.Text, err = f.String()
		case 2:
			c.Number, err = f.Uint64()
		}
		return err
	})
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        testConfig
		WantSaveErr *errors.Error
	}{
		"full": {
			Conf: testConfig{Text: "foobar", Number: 852151421},
		},
		"zero number": {
			Conf: testConfig{Text: "foobar"},
		},
		"invalid configuration cannot be saved": {
			Conf:        testConfig{Number: 1},
			WantSaveErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", &tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got testConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var got testConfig
	err := Load(store.MemStore(), "mypkg", &got)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitializer(t *testing.T) {
	genesis := `{"conf": {"mypkg": {"text": "hello", "number": 7}}}`
	var opts barter.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	ini := NewInitializer().Register("mypkg", func() Configuration { return &testConfig{} })
	assert.Nil(t, ini.FromGenesis(opts, db))

	var got testConfig
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, testConfig{Text: "hello", Number: 7}, got)

	missing := NewInitializer().Register("otherpkg", func() Configuration { return &testConfig{} })
	assert.IsErr(t, errors.ErrNotFound, missing.FromGenesis(opts, db))
}
