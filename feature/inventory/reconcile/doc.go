// Package reconcile binds the generic reconciliation engine to canonical
// inventory records and their entry storage.
package reconcile
