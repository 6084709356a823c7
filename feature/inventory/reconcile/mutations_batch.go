package reconcile

// Batch mutation operations, detected by reconcile.ApplyPlan.

import (
	"context"

	"inventory-manager/core/reconcile"
	"inventory-manager/feature/inventory/models"
)

// CreateBatch inserts every created record in one statement.
func (m *EntryMutator) CreateBatch(ctx context.Context, actions []reconcile.Action[models.Asset]) error {
	entries := make([]models.Entry, 0, len(actions))
	for _, action := range actions {
		entry, err := m.entry(action.Key, action.Item)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	return m.writer.CreateEntries(ctx, entries)
}

// DeleteBatch removes every deleted key in one statement.
func (m *EntryMutator) DeleteBatch(ctx context.Context, keys []string) error {
	return m.writer.DeleteEntries(ctx, m.owner, m.category, keys)
}
