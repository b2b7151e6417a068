package errors

import (
	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the innermost stack trace attached to given error chain
// or nil if there is none.
func stackTrace(err error) errors.StackTrace {
	var found errors.StackTrace
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			found = st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
