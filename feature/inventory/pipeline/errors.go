package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrTransition wraps state machine failures that are not handler errors.
	ErrTransition = errors.New("error in inventory transition")
	// ErrNoStore is returned when an orchestrator is built without a store.
	ErrNoStore = errors.New("pipeline requires a store")
)

// OwnerResolutionError records that no owning item could be matched or created
// for a document. It is non-fatal: agent bookkeeping still commits.
type OwnerResolutionError struct {
	DeviceID string
	ItemType string
	Reason   string
}

func (e *OwnerResolutionError) Error() string {
	return fmt.Sprintf("no owning %s resolved for device %q: %s", e.ItemType, e.DeviceID, e.Reason)
}
