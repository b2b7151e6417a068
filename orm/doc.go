/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are addressed by a primary key, which for every barter entity is
  its 32 byte address.
* Easy queries for one and iteration over a key prefix.

Existence of a key is meaningful: an escrow or a whitelist marker is
considered open for as long as it is present, so Insert refuses to overwrite
and Delete refuses to remove what is not there.
*/
package orm
