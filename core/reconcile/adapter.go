package reconcile

import "context"

// Adapter defines the model-specific part of a reconciliation.
// Each adapter tells the engine how to key and compare one collection of records
// (e.g. network ports, software installs).
type Adapter[T any] interface {
	// Name returns the unique name of the collection (e.g. "networkport").
	Name() string

	// ExtractKey returns the identity key of a record.
	// Records with equal keys describe the same logical entity.
	ExtractKey(item T) string

	// CompareFields compares the comparable fields of a stored and an incoming record
	// and returns a list of mismatch descriptions. Each string includes the field
	// label and both values (e.g. "mac: stored=aa:bb incoming=cc:dd").
	CompareFields(stored, incoming T) []string

	// Merge combines two incoming records that share a key.
	// Implementations keep the last non-empty scalar and union list fields.
	Merge(prev, next T) T
}

// Mutator applies planned actions for one collection.
// Batch variants (CreateBatch, UpdateBatch, DeleteBatch) are detected by type assertion.
type Mutator[T any] interface {
	Create(ctx context.Context, key string, item T) error
	Update(ctx context.Context, key string, item T) error
	Delete(ctx context.Context, key string) error
}
