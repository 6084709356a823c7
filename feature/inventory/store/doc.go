// Package store persists inventoried items, their agents and their sub-entities
// on gorm.
//
// Sub-entities are rows of inventory_entries keyed by (item type, item id,
// category, identity key) with the canonical record as a JSON payload.
// Locker implementations provide the per-item mutual exclusion concurrent
// inventories need.
package store
