package asset

import (
	"context"
	"fmt"

	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"
)

// Batch is the combined output of every normalizer for one document.
type Batch struct {
	Owner *models.Computer
	// OwnerPresent reports whether any owner section was in the document. When
	// false, Owner is an empty placeholder.
	OwnerPresent bool
	Assets       map[models.Category][]models.Asset
	Present      map[models.Category]bool
	Scopes       map[models.Category]func(models.Asset) bool
	VMComputers  []*models.Computer
}

// Registry dispatches document sections to normalizers.
type Registry struct {
	owner       Normalizer
	normalizers []Normalizer
	claimed     map[string]struct{}
}

// NewRegistry builds the registry. The owner normalizer always runs; the others run
// when at least one of their sections is present.
func NewRegistry(owner Normalizer, normalizers ...Normalizer) *Registry {
	r := &Registry{owner: owner, normalizers: normalizers, claimed: make(map[string]struct{})}
	for _, n := range append([]Normalizer{owner}, normalizers...) {
		for _, s := range n.Sections() {
			r.claimed[s] = struct{}{}
		}
	}
	return r
}

// DefaultRegistry wires every built-in normalizer.
func DefaultRegistry(dict *dictionary.Dictionary) *Registry {
	return NewRegistry(
		NewComputerNormalizer(dict),
		NewFirmwareNormalizer(dict),
		NewBatteryNormalizer(dict),
		NewOperatingSystemNormalizer(dict),
		NewComponentNormalizer(dict),
		NewNetworkNormalizer(dict),
		NewMonitorNormalizer(dict),
		NewPeripheralNormalizer(dict),
		NewPrinterNormalizer(dict),
		NewSoftwareNormalizer(dict),
		NewVirtualMachineNormalizer(),
		NewPassthroughNormalizer(),
	)
}

// Dispatch validates that every section is handled and runs the normalizers.
// An unhandled section yields a *document.UnsupportedSectionError.
func (r *Registry) Dispatch(ctx context.Context, rc *RunContext, content document.Content) (*Batch, error) {
	for _, name := range content.Names() {
		if _, ok := r.claimed[name]; !ok {
			return nil, &document.UnsupportedSectionError{Section: name}
		}
	}

	batch := &Batch{
		Assets:  make(map[models.Category][]models.Asset),
		Present: make(map[models.Category]bool),
		Scopes:  make(map[models.Category]func(models.Asset) bool),
	}

	ownerResult, err := r.owner.Normalize(ctx, rc, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.owner.Name(), err)
	}
	batch.Owner = ownerResult.Owner
	batch.OwnerPresent = hasAny(content, r.owner.Sections())
	if batch.Owner == nil {
		batch.Owner = &models.Computer{}
	}

	for _, n := range r.normalizers {
		if !hasAny(content, n.Sections()) {
			continue
		}
		res, err := n.Normalize(ctx, rc, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Name(), err)
		}
		for _, c := range n.Categories() {
			batch.Present[c] = true
		}
		if scoper, ok := n.(Scoper); ok {
			for _, c := range n.Categories() {
				batch.Scopes[c] = scoper.Scope(content)
			}
		}
		for _, a := range res.Assets {
			batch.Assets[a.Category()] = append(batch.Assets[a.Category()], a)
		}
		for c, derived := range res.Derived {
			batch.Assets[c] = append(batch.Assets[c], derived...)
		}
		batch.VMComputers = append(batch.VMComputers, res.VMComputers...)
	}

	return batch, nil
}
