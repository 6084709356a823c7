package pipeline

import (
	"time"

	"inventory-manager/core/reconcile"
	"inventory-manager/feature/inventory/asset"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/matching"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/store"

	sw "github.com/filanov/stateswitch"
	"github.com/hashicorp/go-multierror"
)

// Run is the working state of one inventory submission.
//
// It implements sw.StateSwitch so the state machine can drive it; transition
// handlers fill its fields stage by stage.
type Run struct {
	ID      string
	Raw     []byte
	DryRun  bool
	Started time.Time

	state sw.State

	Doc     *document.Document
	Meta    document.Metadata
	Agent   *models.Agent
	Context *asset.RunContext
	Batch   *asset.Batch

	Decision matching.Decision
	Owner    store.Owner
	Item     *models.Item
	Plans    map[models.Category]*reconcile.ReconcilePlan[models.Asset]
	Claims   []claim

	ArchivePath string

	// fatal is the error that aborted the run, nil otherwise.
	fatal error
	// errs accumulates every user-visible error, fatal or not.
	errs *multierror.Error

	tx       *store.Store
	releases []func()
}

// claim pairs an unmanaged placeholder port with the incoming port taking it over.
type claim struct {
	placeholder models.Entry
	key         string
	port        *models.NetworkPort
}

func newRun(id string, raw []byte, dryRun bool) *Run {
	return &Run{
		ID:      id,
		Raw:     raw,
		DryRun:  dryRun,
		Started: time.Now(),
		state:   StateReceived,
		Plans:   make(map[models.Category]*reconcile.ReconcilePlan[models.Asset]),
	}
}

func (r *Run) State() sw.State {
	return r.state
}

func (r *Run) SetState(state sw.State) error {
	r.state = state
	return nil
}

// addError records a non-fatal error.
func (r *Run) addError(err error) {
	r.errs = multierror.Append(r.errs, err)
}

// fail records the error that aborts the run.
func (r *Run) fail(err error) {
	r.fatal = err
	r.errs = multierror.Append(r.errs, err)
}

// Err returns the accumulated errors of the run, or nil.
func (r *Run) Err() error {
	return r.errs.ErrorOrNil()
}

// Fatal returns the error that aborted the run, or nil.
func (r *Run) Fatal() error {
	return r.fatal
}

func (r *Run) itemType() string {
	if r.Meta.ItemType != "" {
		return r.Meta.ItemType
	}
	if r.Doc != nil && r.Doc.ItemType != "" {
		return r.Doc.ItemType
	}
	return models.ItemTypeComputer
}

// release drops every lock held by the run.
func (r *Run) release() {
	for i := len(r.releases) - 1; i >= 0; i-- {
		r.releases[i]()
	}
	r.releases = nil
}

// Result is the acknowledgement of one inventory submission.
type Result struct {
	RunID    string                           `json:"run_id"`
	DeviceID string                           `json:"device_id,omitempty"`
	State    string                           `json:"state"`
	ItemType string                           `json:"itemtype,omitempty"`
	ItemID   uint                             `json:"items_id,omitempty"`
	DryRun   bool                             `json:"dry_run,omitempty"`
	Failed   bool                             `json:"failed"`
	Errors   []string                         `json:"errors,omitempty"`
	Archive  string                           `json:"archive,omitempty"`
	Plans    map[string]reconcile.PlanSummary `json:"plans,omitempty"`
}

func (r *Run) result() *Result {
	res := &Result{
		RunID:    r.ID,
		DeviceID: r.Meta.DeviceID,
		State:    string(r.state),
		ItemType: r.itemType(),
		ItemID:   r.Owner.ItemID,
		DryRun:   r.DryRun,
		Failed:   r.fatal != nil,
		Archive:  r.ArchivePath,
	}
	if r.errs != nil {
		for _, err := range r.errs.Errors {
			res.Errors = append(res.Errors, err.Error())
		}
	}
	if len(r.Plans) > 0 {
		res.Plans = make(map[string]reconcile.PlanSummary, len(r.Plans))
		for c, plan := range r.Plans {
			res.Plans[string(c)] = plan.Summary
		}
	}
	return res
}
