/*
Package whitelist implements an allow list of users.

A user is allowed when a marker record exists at the address derived from
the user. Only the administrator declared in the configuration can add or
remove users. The list is consulted by the token extension before tokens of
a restricted mint are moved.
*/
package whitelist
