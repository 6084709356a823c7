package reconcile

import "fmt"

// ReconcileResult represents the reconciliation output for a single key.
type ReconcileResult struct {
	// ID is the identity key of the entity.
	ID string `json:"id"`

	// IncomingPresent indicates whether the entity is in the incoming set.
	IncomingPresent bool `json:"incoming_present"`

	// StoredPresent indicates whether the entity is in the stored snapshot.
	StoredPresent bool `json:"stored_present"`

	// Mismatch contains descriptions of comparable fields that differ.
	Mismatch []string `json:"mismatch"`
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreate inserts an incoming entity missing from storage.
	ActionCreate ActionType = "create"
	// ActionUpdate rewrites a stored entity whose comparable fields changed.
	ActionUpdate ActionType = "update"
	// ActionDelete removes a stored entity absent from the incoming set.
	ActionDelete ActionType = "delete"
)

// Action represents a planned mutation operation.
type Action[T any] struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identity key.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Item is the incoming record for create and update actions.
	Item T `json:"-"`
}

// ReconcilePlan contains reconciliation results and planned actions for one collection.
type ReconcilePlan[T any] struct {
	// Collection is the adapter name the plan was built for.
	Collection string `json:"collection"`

	// Results contains per-key reconciliation data.
	Results []ReconcileResult `json:"results"`

	// Actions contains planned mutations ordered creates, updates, deletes.
	Actions []Action[T] `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// Empty reports whether the plan has nothing to apply.
func (p *ReconcilePlan[T]) Empty() bool {
	return p == nil || len(p.Actions) == 0
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	TotalItems int `json:"total_items"`
	Unchanged  int `json:"unchanged"`
	Creates    int `json:"creates"`
	Updates    int `json:"updates"`
	Deletes    int `json:"deletes"`
}

// ReconcileOptions controls how a plan is applied.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}

// ConflictError is returned when a stored snapshot holds two records with the same key.
// Well-formed keys make this impossible, so callers treat it as an integrity failure.
type ConflictError struct {
	Collection string
	Key        string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("reconciliation conflict in %s: duplicate stored key %q", e.Collection, e.Key)
}
