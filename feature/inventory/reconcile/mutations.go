package reconcile

// Mutation methods implementing reconcile.Mutator interface

import (
	"context"
	"fmt"

	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/store"
)

// EntryWriter is the write side of the entry storage.
type EntryWriter interface {
	CreateEntries(ctx context.Context, entries []models.Entry) error
	UpdateEntry(ctx context.Context, entry models.Entry) error
	DeleteEntries(ctx context.Context, owner store.Owner, category models.Category, keys []string) error
}

// EntryMutator applies a plan of one category to the entries of one owner.
type EntryMutator struct {
	writer   EntryWriter
	owner    store.Owner
	category models.Category
}

// NewMutator creates a mutator bound to an owner and category.
func NewMutator(writer EntryWriter, owner store.Owner, category models.Category) *EntryMutator {
	return &EntryMutator{writer: writer, owner: owner, category: category}
}

// Create inserts one record.
func (m *EntryMutator) Create(ctx context.Context, key string, item models.Asset) error {
	entry, err := m.entry(key, item)
	if err != nil {
		return err
	}
	return m.writer.CreateEntries(ctx, []models.Entry{entry})
}

// Update rewrites the payload of one record.
func (m *EntryMutator) Update(ctx context.Context, key string, item models.Asset) error {
	entry, err := m.entry(key, item)
	if err != nil {
		return err
	}
	return m.writer.UpdateEntry(ctx, entry)
}

// Delete removes one record.
func (m *EntryMutator) Delete(ctx context.Context, key string) error {
	return m.writer.DeleteEntries(ctx, m.owner, m.category, []string{key})
}

func (m *EntryMutator) entry(key string, item models.Asset) (models.Entry, error) {
	if item == nil {
		return models.Entry{}, fmt.Errorf("no %s record for key %q", m.category, key)
	}
	if item.Category() != m.category {
		return models.Entry{}, fmt.Errorf("record of category %s applied to %s", item.Category(), m.category)
	}
	return store.NewEntry(m.owner, key, item)
}
