/*
Package utils contains the decorators every transaction passes through
before it reaches its handler: panic recovery, logging, metrics, action
tagging and the savepoint that makes each transaction atomic.
*/
package utils
