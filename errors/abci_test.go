package errors

import (
	"fmt"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"registered error": {
			err:      ErrUnauthorized,
			wantLog:  "unauthorized",
			wantCode: ErrUnauthorized.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			wantLog:  "bar: foo: not found",
			wantCode: ErrNotFound.code,
		},
		"nil is empty message": {
			err:      nil,
			wantLog:  "",
			wantCode: 0,
		},
		"typed nil is not an error": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      fmt.Errorf("stdlib error"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      fmt.Errorf("stdlib error"),
			debug:    true,
			wantLog:  "stdlib error",
			wantCode: 1,
		},
		"registered error in debug mode": {
			err:      ErrAmount,
			debug:    true,
			wantLog:  "invalid amount",
			wantCode: ErrAmount.code,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"multi error reports first code": {
			err:      Append(Field("Seed", ErrInput, "bad"), ErrAmount),
			wantLog:  `2 errors: field "Seed": bad: invalid input; invalid amount`,
			wantCode: ErrInput.code,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}
