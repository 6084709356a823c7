package asset

import (
	"context"
	"fmt"

	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"

	"go.uber.org/zap"
)

// Options are the pipeline switches normalizers honour.
type Options struct {
	// ParseOSFullName enables extraction of name/version/edition/arch from the OS full name.
	ParseOSFullName bool
	// CreateVMComputers projects each guest with a UUID as a Computer of its own.
	CreateVMComputers bool
}

// RunContext carries the per-run settings threaded through every stage.
type RunContext struct {
	RunID      string
	DeviceID   string
	ItemType   string
	EntityID   uint
	LocationID uint
	IsDynamic  bool
	NoHistory  bool
	Partial    bool
	DryRun     bool
	Options    Options
	Logger     *zap.Logger
}

// Log returns the run logger, or a no-op logger.
func (rc *RunContext) Log() *zap.Logger {
	if rc == nil || rc.Logger == nil {
		return zap.NewNop()
	}
	return rc.Logger
}

// Result is the output of one normalizer.
type Result struct {
	// Assets are the canonical records of the normalizer's own categories.
	Assets []models.Asset
	// Derived holds sub-entities produced alongside (ports, IP addresses).
	Derived map[models.Category][]models.Asset
	// Owner is set by the computer normalizer only.
	Owner *models.Computer
	// VMComputers are guests to materialize as their own items.
	VMComputers []*models.Computer
}

func (r *Result) derive(a models.Asset) {
	if r.Derived == nil {
		r.Derived = make(map[models.Category][]models.Asset)
	}
	r.Derived[a.Category()] = append(r.Derived[a.Category()], a)
}

// Normalizer turns raw document sections into canonical records.
type Normalizer interface {
	// Name identifies the normalizer in logs and errors.
	Name() string
	// Sections lists the content sections the normalizer consumes.
	Sections() []string
	// Categories lists the collections the normalizer produces.
	Categories() []models.Category
	// Normalize reads its sections (and any auxiliary ones) from content.
	Normalize(ctx context.Context, rc *RunContext, content document.Content) (*Result, error)
}

// Scoper is implemented by normalizers whose collection is shared between several
// sections. In partial documents only stored records in scope are reconciled.
type Scoper interface {
	Scope(content document.Content) func(models.Asset) bool
}

// OwnerTypeError is returned by normalizers that only apply to computers.
type OwnerTypeError struct {
	Normalizer string
	ItemType   string
}

func (e *OwnerTypeError) Error() string {
	return fmt.Sprintf("%s inventory cannot be attached to item type %s", e.Normalizer, e.ItemType)
}

func requireComputer(rc *RunContext, name string) error {
	if rc.ItemType != "" && rc.ItemType != models.ItemTypeComputer {
		return &OwnerTypeError{Normalizer: name, ItemType: rc.ItemType}
	}
	return nil
}

func hasAny(content document.Content, sections []string) bool {
	for _, s := range sections {
		if content.Has(s) {
			return true
		}
	}
	return false
}
