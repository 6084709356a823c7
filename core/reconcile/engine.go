package reconcile

import (
	"fmt"
	"sort"
)

// IndexIncoming keys incoming records, merging records that share a key.
// The returned order lists keys as first seen.
func IndexIncoming[T any](adapter Adapter[T], items []T) (map[string]T, []string) {
	index := make(map[string]T, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		key := adapter.ExtractKey(item)
		if prev, ok := index[key]; ok {
			index[key] = adapter.Merge(prev, item)
			continue
		}
		index[key] = item
		order = append(order, key)
	}
	return index, order
}

// IndexStored keys a stored snapshot. Duplicate keys yield a *ConflictError.
func IndexStored[T any](adapter Adapter[T], items []T) (map[string]T, error) {
	index := make(map[string]T, len(items))
	for _, item := range items {
		key := adapter.ExtractKey(item)
		if _, ok := index[key]; ok {
			return nil, &ConflictError{Collection: adapter.Name(), Key: key}
		}
		index[key] = item
	}
	return index, nil
}

// Reconcile diffs incoming records against the stored snapshot.
// Keys only incoming become creates, keys only stored become deletes and keys in both
// with mismatching comparable fields become updates.
func Reconcile[T any](adapter Adapter[T], incoming, stored map[string]T) *ReconcilePlan[T] {
	union := buildUnion(incoming, stored)

	plan := &ReconcilePlan[T]{
		Collection: adapter.Name(),
		Results:    make([]ReconcileResult, 0, len(union)),
	}

	var creates, updates, deletes []Action[T]
	for _, key := range union {
		result := buildResult(adapter, key, incoming, stored)
		plan.Results = append(plan.Results, result)

		switch {
		case result.IncomingPresent && !result.StoredPresent:
			creates = append(creates, Action[T]{Type: ActionCreate, Key: key, Reason: "missing in storage", Item: incoming[key]})
		case !result.IncomingPresent && result.StoredPresent:
			deletes = append(deletes, Action[T]{Type: ActionDelete, Key: key, Reason: "absent from inventory"})
		case len(result.Mismatch) > 0:
			updates = append(updates, Action[T]{Type: ActionUpdate, Key: key, Reason: fmt.Sprintf("mismatch: %v", result.Mismatch), Item: incoming[key]})
		default:
			plan.Summary.Unchanged++
		}
	}

	plan.Actions = append(plan.Actions, creates...)
	plan.Actions = append(plan.Actions, updates...)
	plan.Actions = append(plan.Actions, deletes...)

	plan.Summary.TotalItems = len(union)
	plan.Summary.Creates = len(creates)
	plan.Summary.Updates = len(updates)
	plan.Summary.Deletes = len(deletes)

	return plan
}

// ReconcileItems is a convenience wrapper that indexes both sides before diffing.
func ReconcileItems[T any](adapter Adapter[T], incoming, stored []T) (*ReconcilePlan[T], error) {
	storedIndex, err := IndexStored(adapter, stored)
	if err != nil {
		return nil, err
	}
	incomingIndex, _ := IndexIncoming(adapter, incoming)
	return Reconcile(adapter, incomingIndex, storedIndex), nil
}

// buildUnion returns every key of both indices, sorted for deterministic output.
func buildUnion[T any](incoming, stored map[string]T) []string {
	seen := make(map[string]struct{}, len(incoming)+len(stored))
	for key := range incoming {
		seen[key] = struct{}{}
	}
	for key := range stored {
		seen[key] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func buildResult[T any](adapter Adapter[T], key string, incoming, stored map[string]T) ReconcileResult {
	in, inPresent := incoming[key]
	st, stPresent := stored[key]

	result := ReconcileResult{
		ID:              key,
		IncomingPresent: inPresent,
		StoredPresent:   stPresent,
		Mismatch:        []string{},
	}

	if inPresent && stPresent {
		if mismatch := adapter.CompareFields(st, in); len(mismatch) > 0 {
			result.Mismatch = mismatch
		}
	}

	return result
}
