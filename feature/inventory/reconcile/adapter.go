package reconcile

import (
	"inventory-manager/core/reconcile"
	"inventory-manager/feature/inventory/identity"
	"inventory-manager/feature/inventory/models"
)

// AssetAdapter implements the reconcile.Adapter interface for one category of
// canonical records.
type AssetAdapter struct {
	category models.Category
}

// NewAdapter creates the adapter of a category.
func NewAdapter(category models.Category) *AssetAdapter {
	return &AssetAdapter{category: category}
}

// Name returns the category name.
func (a *AssetAdapter) Name() string {
	return string(a.category)
}

// ExtractKey returns the identity key of a record.
func (a *AssetAdapter) ExtractKey(item models.Asset) string {
	return identity.KeyFor(item)
}

// CompareFields lists the comparable fields that differ.
func (a *AssetAdapter) CompareFields(stored, incoming models.Asset) []string {
	return models.CompareFields(stored, incoming)
}

// Merge combines two incoming records sharing a key.
func (a *AssetAdapter) Merge(prev, next models.Asset) models.Asset {
	return models.Merge(prev, next)
}

// Plan diffs the incoming records of a category against its stored snapshot.
// A snapshot holding one key twice yields a *reconcile.ConflictError.
func Plan(category models.Category, incoming, stored []models.Asset) (*reconcile.ReconcilePlan[models.Asset], error) {
	return reconcile.ReconcileItems[models.Asset](NewAdapter(category), incoming, stored)
}
