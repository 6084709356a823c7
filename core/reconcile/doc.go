// Package reconcile provides a generic create/update/delete diff between an incoming
// set of records and a previously stored snapshot of the same collection.
//
// # Architecture
//
// 1. Adapter: collection-specific logic that extracts identity keys, compares the
// comparable field subset of two records and merges incoming duplicates.
//
// 2. Engine: IndexIncoming merges records sharing a key, IndexStored rejects duplicate
// stored keys with a ConflictError, and Reconcile builds the union of keys and
// classifies each key as create, update, delete or unchanged.
//
// 3. Plan: ApplyPlan executes the planned actions through a Mutator, preferring the
// optional batch interfaces when the mutator implements them.
//
// The three action sets are disjoint by construction: a key is either only incoming,
// only stored, or present in both.
//
// # Usage Example
//
//	plan, err := reconcile.ReconcileItems[models.Asset](adapter, incoming, stored)
//	if err != nil {
//	    return err
//	}
//	executed, err := reconcile.ApplyPlan[models.Asset](ctx, mutator, plan, reconcile.ReconcileOptions{})
package reconcile
