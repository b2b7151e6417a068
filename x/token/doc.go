/*
Package token implements fungible token mints and token accounts.

A mint is created by its authority, which is the only one allowed to issue
new tokens. Tokens are held in accounts. Each account belongs to a single
mint and is controlled by its owner. The owner can be a key holder or a
derived address, in which case only the extension that derived it can
produce the authority to move funds.

An associated account is an account at an address derived from its owner
and mint. Anyone can compute where the associated account of an owner is,
which is how the escrow finds its vault.
*/
package token
