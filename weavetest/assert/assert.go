package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/barter/errors"
)

// Tester is the part of testing.TB the value assertions need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test unless value is nil or a typed nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of wrapped errors.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test unless want and got are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError checks the errors attached to fieldName within err. Exactly one
// error of the want kind must be present. Pass nil to require that the field
// has no error at all.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			logErrors(t, errs)
			t.Fatalf("want no error for field %q, got %d", fieldName, len(errs))
		}
		return
	}

	switch len(errs) {
	case 0:
		t.Fatalf("no error found for field %q", fieldName)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("field %q: want %q, got %q", fieldName, want, errs[0])
		}
	default:
		logErrors(t, errs)
		t.Fatalf("field %q: want one error, got %d", fieldName, len(errs))
	}
}

func logErrors(t testing.TB, errs []error) {
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
}

// IsErr fails the test unless got is of the want kind. A nil want matches
// only a nil error.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
