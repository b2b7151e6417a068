package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/weavetest"
)

// StdTx is a transaction signing the serialized form of its message.
type StdTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ barter.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{Tx: weavetest.Tx{Msg: &weavetest.Msg{Serialized: payload}}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []barter.Condition
}

var _ barter.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &barter.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &barter.DeliverResult{}, nil
}
