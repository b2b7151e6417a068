/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object in the database under the
"_c:<package name>" key. It is written once from the genesis file and read by
the extension handlers with Load.
*/
package gconf
