/*
Package app contains the building blocks of an ABCI application: the
router dispatching messages to handlers, the decorator chain, the commit
store holding check and deliver caches, and the StoreApp and BaseApp
implementing the ABCI interface.
*/
package app
