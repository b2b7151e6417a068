package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*wrappedError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrEmpty,
			wantIs: false,
		},
		"field error unwraps": {
			a:      ErrAmount,
			b:      Field("Deposit", ErrAmount, "must be positive"),
			wantIs: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Register(ErrNotFound.code, "again")
}

func TestIsRetryable(t *testing.T) {
	retry := RegisterRetryable(9001, "try later")

	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":                   {err: nil, want: false},
		"plain root":            {err: ErrNotFound, want: false},
		"retryable root":        {err: retry, want: true},
		"wrapped retryable":     {err: Wrap(retry, "not yet"), want: true},
		"double wrapped":        {err: Wrapf(Wrap(retry, "a"), "b %d", 1), want: true},
		"stdlib":                {err: fmt.Errorf("boom"), want: false},
		"wrapped non retryable": {err: Wrap(ErrUnauthorized, "no"), want: false},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrapAttachesStackOnce(t *testing.T) {
	err := Wrap(Wrap(ErrInput, "inner"), "outer")
	if stackTrace(err) == nil {
		t.Fatal("stack trace expected")
	}
	if got := err.Error(); got != "outer: inner: invalid input" {
		t.Fatalf("unexpected message: %q", got)
	}
	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "errors_test.go") {
		t.Fatalf("stack trace not printed: %s", full)
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("at the disco")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}
