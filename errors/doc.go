/*
Package errors implements the error model shared by every barter extension.

Reuse the root errors declared in this package whenever possible and declare
an extension specific one only when a client has to tell it apart from every
other failure. A root error is declared with Register(code, description), or
with RegisterRetryable when a client may simply resubmit the same transaction
later and expect a different outcome.

Errors are created with Wrap, Wrapf or ErrXyz.New at the point of failure so a
stack trace is attached. Only the innermost wrap records the stack.

Once you have an error, you can use fmt.Printf/Sprintf to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
