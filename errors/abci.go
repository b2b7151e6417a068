package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the ABCI code of a successful response.
	SuccessABCICode = 0

	// Errors not registered with this package share one code and, outside
	// of debug mode, one message so that no internals leak to clients.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of the ABCI response for err.
//
// A registered error, or one wrapping it, exposes its own code and message.
// Any other error is reported as internal. Debug mode always returns the
// full message including the stack trace, if any.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// abciCode unwraps err until an error providing an ABCI code is found.
func abciCode(err error) uint32 {
	for !errIsNil(err) {
		if c, ok := err.(interface{ ABCICode() uint32 }); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil also recognizes a typed nil pointer stored in the error
// interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	val := reflect.ValueOf(err)
	return val.Kind() == reflect.Ptr && val.IsNil()
}
