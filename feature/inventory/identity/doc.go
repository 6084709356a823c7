// Package identity derives stable identity keys for canonical inventory records.
//
// Keys are lower-cased parts joined with a NUL separator. They never include
// run-specific values, so the same input always yields the same key.
package identity
