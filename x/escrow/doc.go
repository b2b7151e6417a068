/*
Package escrow implements a two party asset swap.

A maker opens an offer by depositing tokens of one mint into a vault and
declaring how many tokens of another mint it wants in return. Any taker can
accept the offer by paying the requested amount, which atomically releases
the vault to the taker. Until the offer is taken the maker can cancel it and
get the deposit back.

The offer record lives at an address derived from the maker and a seed
chosen by the maker. The vault is the associated token account of that
address. Neither address has a private key: only this extension, after
recomputing the derivation, is able to move tokens out of the vault.

A maker can delay takers by a waiting time. The offer cannot be taken before
the block time reaches the unlock time. Refunds are never delayed.
*/
package escrow
