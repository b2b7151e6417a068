/*
Package x contains the barter extensions

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together by the app package to construct
the application.

  cash       native coins used to pay storage reserves
  token      token mints and accounts, the custody layer of the escrow
  whitelist  allow list consulted before restricted token transfers
  escrow     two party asset swap: make, take and refund an offer
  sigs       ed25519 signature verification and replay protection
  utils      savepoint, logging, recovery and metrics decorators

Note that types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `escrow.MakeMsg` in place of `escrow.EscrowMakeMsg`.
*/
package x
