package barter

import (
	"fmt"

	"github.com/iov-one/barter/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is what a handler returns for a successfully delivered
// transaction. Failures are always reported through the error.
type DeliverResult struct {
	// Data is the machine readable outcome, for example the address of a
	// created account.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and allow to search transactions.
	Tags    []common.KVPair
	GasUsed int64
}

// Tag appends an indexable key value pair to the result.
func (d *DeliverResult) Tag(key string, value []byte) {
	d.Tags = append(d.Tags, common.KVPair{Key: []byte(key), Value: value})
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult is what a handler returns for a transaction that passed the
// mempool checks.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the upper bound of work the transaction may cost.
	GasAllocated int64
}

// NewCheck returns a result with only the gas and log set, which is all
// most handlers need.
func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{GasAllocated: gasAllocated, Log: log}
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverOrError builds the DeliverTx response out of a handler call.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError builds the CheckTx response out of a handler call.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// DeliverTxError turns err into a failed DeliverTx response. The full error
// with its stack is only exposed in debug mode.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := abciFailure("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError turns err into a failed CheckTx response. The full error
// with its stack is only exposed in debug mode.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := abciFailure("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func abciFailure(stage string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, fmt.Sprintf("cannot %s tx: %s", stage, log)
}

// ParseDeliverOrError reads a DeliverTx response back. A failed response is
// returned as an ErrState error carrying the original code and log.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.Wrapf(errors.ErrState, "code %d: %s", res.Code, res.Log)
	}
	return &DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}, nil
}
