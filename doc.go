/*
Package barter defines interfaces used throughout the app, such as: storage,
transactions, handlers, addresses and the derived address scheme.

The application is a set of extensions under x/ that are wired together by
the app package. The central extension is x/escrow, a two party asset swap:
a maker locks tokens in a vault owned by a derived escrow address and a
taker settles the trade atomically by paying the requested tokens.

Look into this package to get a brief overview of design decisions made
around interfaces and extension building blocks.
*/
package barter
