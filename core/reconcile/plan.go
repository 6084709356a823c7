package reconcile

import (
	"context"
	"fmt"
)

// BatchCreator is implemented by mutators that can insert many records at once.
type BatchCreator[T any] interface {
	CreateBatch(ctx context.Context, actions []Action[T]) error
}

// BatchUpdater is implemented by mutators that can rewrite many records at once.
type BatchUpdater[T any] interface {
	UpdateBatch(ctx context.Context, actions []Action[T]) error
}

// BatchDeleter is implemented by mutators that can remove many records at once.
type BatchDeleter interface {
	DeleteBatch(ctx context.Context, keys []string) error
}

// ApplyPlan executes the actions in a reconcile plan.
// Deletes run first so a re-keyed entity never collides with its old row.
// Returns the number of actions executed and the first error encountered.
func ApplyPlan[T any](ctx context.Context, mutator Mutator[T], plan *ReconcilePlan[T], opts ReconcileOptions) (executed int, err error) {
	if opts.DryRun || plan.Empty() {
		return 0, nil
	}

	var (
		deleteKeys    []string
		createActions []Action[T]
		updateActions []Action[T]
	)

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDelete:
			deleteKeys = append(deleteKeys, action.Key)
		case ActionCreate:
			createActions = append(createActions, action)
		case ActionUpdate:
			updateActions = append(updateActions, action)
		}
	}

	if len(deleteKeys) > 0 {
		if batch, ok := mutator.(BatchDeleter); ok {
			if err := batch.DeleteBatch(ctx, deleteKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete %s: %w", plan.Collection, err)
			}
			executed += len(deleteKeys)
		} else {
			for _, key := range deleteKeys {
				if err := mutator.Delete(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete %s key %q: %w", plan.Collection, key, err)
				}
				executed++
			}
		}
	}

	if len(createActions) > 0 {
		if batch, ok := mutator.(BatchCreator[T]); ok {
			if err := batch.CreateBatch(ctx, createActions); err != nil {
				return executed, fmt.Errorf("failed to batch create %s: %w", plan.Collection, err)
			}
			executed += len(createActions)
		} else {
			for _, action := range createActions {
				if err := mutator.Create(ctx, action.Key, action.Item); err != nil {
					return executed, fmt.Errorf("failed to create %s key %q: %w", plan.Collection, action.Key, err)
				}
				executed++
			}
		}
	}

	if len(updateActions) > 0 {
		if batch, ok := mutator.(BatchUpdater[T]); ok {
			if err := batch.UpdateBatch(ctx, updateActions); err != nil {
				return executed, fmt.Errorf("failed to batch update %s: %w", plan.Collection, err)
			}
			executed += len(updateActions)
		} else {
			for _, action := range updateActions {
				if err := mutator.Update(ctx, action.Key, action.Item); err != nil {
					return executed, fmt.Errorf("failed to update %s key %q: %w", plan.Collection, action.Key, err)
				}
				executed++
			}
		}
	}

	return executed, nil
}
