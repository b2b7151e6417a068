/*
Package cash implements wallets of native coins.

Native coins are not traded by the escrow. They pay the storage reserve of
escrow records and token accounts: the reserve is moved to the address of the
created record and moved back when the record is closed.
*/
package cash
