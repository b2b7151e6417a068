package whitelist

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
)

var (
	_ barter.Msg = (*AddMsg)(nil)
	_ barter.Msg = (*RemoveMsg)(nil)
)

// AddMsg puts a user on the list.
type AddMsg struct {
	User barter.Address
}

func (AddMsg) Path() string {
	return "whitelist/add"
}

func (m *AddMsg) Validate() error {
	return errors.AppendField(nil, "User", m.User.Validate())
}

func (m *AddMsg) Marshal() ([]byte, error) {
	return marshalUser(m.User)
}

func (m *AddMsg) Unmarshal(raw []byte) (err error) {
	m.User, err = unmarshalUser(raw)
	return err
}

// RemoveMsg takes a user off the list.
type RemoveMsg struct {
	User barter.Address
}

func (RemoveMsg) Path() string {
	return "whitelist/remove"
}

func (m *RemoveMsg) Validate() error {
	return errors.AppendField(nil, "User", m.User.Validate())
}

func (m *RemoveMsg) Marshal() ([]byte, error) {
	return marshalUser(m.User)
}

func (m *RemoveMsg) Unmarshal(raw []byte) (err error) {
	m.User, err = unmarshalUser(raw)
	return err
}

func marshalUser(user barter.Address) ([]byte, error) {
	return codec.NewEncoder().Bytes(1, user).Result()
}

func unmarshalUser(raw []byte) (barter.Address, error) {
	var user barter.Address
	err := codec.Decode(raw, func(f codec.Field) (err error) {
		if f.Num == 1 {
			user, err = f.Bytes()
		}
		return err
	})
	return user, err
}
