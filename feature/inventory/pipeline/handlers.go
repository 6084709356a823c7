package pipeline

import (
	"context"
	"fmt"
	"time"

	"inventory-manager/core/metrics"
	"inventory-manager/core/reconcile"
	"inventory-manager/feature/inventory/asset"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/identity"
	"inventory-manager/feature/inventory/matching"
	"inventory-manager/feature/inventory/models"
	invreconcile "inventory-manager/feature/inventory/reconcile"
	"inventory-manager/feature/inventory/store"

	sw "github.com/filanov/stateswitch"
	"go.uber.org/zap"
)

// linkedCategories hold sub-items that are standalone items of their own.
var linkedCategories = []models.Category{
	models.CategoryMonitor,
	models.CategoryPeripheral,
	models.CategoryPrinter,
}

// Validate parses the raw document and runs the schema validator.
func (o *Orchestrator) Validate(s sw.StateSwitch, args sw.TransitionArgs) error {
	run, _, err := runFrom(s, args)
	if err != nil {
		return err
	}

	doc, err := document.Parse(run.Raw)
	if err != nil {
		return err
	}
	run.Doc = doc

	return o.validator.Validate(doc)
}

// ExtractMetadata reads the device identity and builds the run context.
func (o *Orchestrator) ExtractMetadata(s sw.StateSwitch, args sw.TransitionArgs) error {
	run, _, err := runFrom(s, args)
	if err != nil {
		return err
	}

	meta, err := document.ExtractMetadata(run.Doc)
	if err != nil {
		return err
	}
	run.Meta = meta

	run.Context = &asset.RunContext{
		RunID:     run.ID,
		DeviceID:  meta.DeviceID,
		ItemType:  run.itemType(),
		EntityID:  o.cfg.DefaultEntityID,
		IsDynamic: o.cfg.DynamicItems,
		NoHistory: o.cfg.NoHistory,
		Partial:   run.Doc.Partial,
		DryRun:    run.DryRun,
		Options:   o.cfg.AssetOptions(),
		Logger:    o.runLogger(run),
	}
	return nil
}

// ResolveOwner opens the run transaction and registers the reporting agent.
func (o *Orchestrator) ResolveOwner(s sw.StateSwitch, args sw.TransitionArgs) error {
	run, tctx, err := runFrom(s, args)
	if err != nil {
		return err
	}
	ctx := tctx.Ctx

	tx, err := o.store.Begin(ctx)
	if err != nil {
		return err
	}
	run.tx = tx

	agent, err := tx.FindAgent(ctx, run.Meta.DeviceID)
	if err != nil {
		return err
	}
	if agent == nil {
		agent = &models.Agent{DeviceID: run.Meta.DeviceID}
	}
	if agent.ItemType != run.itemType() {
		agent.ItemType = run.itemType()
		agent.ItemID = 0
	}
	agent.Version = run.Meta.VersionClient
	agent.ProviderName = run.Meta.ProviderName
	agent.ProviderVersion = run.Meta.ProviderVersion
	agent.Tag = run.Meta.Tag
	agent.LastContact = time.Now()

	if err := tx.SaveAgent(ctx, agent); err != nil {
		return err
	}
	run.Agent = agent
	return nil
}

// Normalize dispatches every document section to its normalizer.
func (o *Orchestrator) Normalize(s sw.StateSwitch, args sw.TransitionArgs) error {
	run, tctx, err := runFrom(s, args)
	if err != nil {
		return err
	}

	batch, err := o.registry.Dispatch(tctx.Ctx, run.Context, run.Doc.Content)
	if err != nil {
		return err
	}
	run.Batch = batch
	return nil
}

// Reconcile resolves the owning item and plans every owned category against a
// freshly read snapshot.
func (o *Orchestrator) Reconcile(s sw.StateSwitch, args sw.TransitionArgs) error {
	run, tctx, err := runFrom(s, args)
	if err != nil {
		return err
	}
	ctx := tctx.Ctx
	itemType := run.itemType()

	matcher := o.matcher(run.tx, o.runLogger(run))
	crit := matching.ForComputer(itemType, run.Agent.ItemID, run.Batch.Owner, run.Batch.Assets[models.CategoryNetworkPort])
	decision, err := matcher.MatchOrCreate(ctx, crit)
	if err != nil {
		return err
	}
	run.Decision = decision

	switch decision.Kind {
	case matching.Ignore:
		ownerErr := &OwnerResolutionError{
			DeviceID: run.Meta.DeviceID,
			ItemType: itemType,
			Reason:   "no identifying attributes",
		}
		run.addError(ownerErr)
		o.runLogger(run).Warn("Owning item not resolved", zap.Error(ownerErr))
		return nil
	case matching.Matched:
		run.Owner = store.Owner{ItemType: itemType, ItemID: decision.ItemID}
		if err := o.lock(ctx, run); err != nil {
			return err
		}
		item, err := run.tx.GetItem(ctx, itemType, decision.ItemID)
		if err != nil {
			return err
		}
		run.Item = item
	default:
		run.Owner = store.Owner{ItemType: itemType}
	}

	if err := o.planClaims(ctx, run); err != nil {
		return err
	}

	for _, c := range models.SubCategories {
		if run.Context.Partial && !run.Batch.Present[c] {
			continue
		}
		stored, err := o.snapshot(ctx, run, c)
		if err != nil {
			return err
		}
		plan, err := invreconcile.Plan(c, run.Batch.Assets[c], stored)
		if err != nil {
			return err
		}
		run.Plans[c] = plan

		metrics.AddActions(string(c), string(reconcile.ActionCreate), plan.Summary.Creates)
		metrics.AddActions(string(c), string(reconcile.ActionUpdate), plan.Summary.Updates)
		metrics.AddActions(string(c), string(reconcile.ActionDelete), plan.Summary.Deletes)
	}
	return nil
}

// planClaims pairs incoming ports with unmanaged placeholders sharing their MAC.
// Each MAC is claimed once.
func (o *Orchestrator) planClaims(ctx context.Context, run *Run) error {
	byMAC := make(map[string]*models.NetworkPort)
	var macs []string
	for _, a := range run.Batch.Assets[models.CategoryNetworkPort] {
		port, ok := a.(*models.NetworkPort)
		if !ok || port.MAC == "" {
			continue
		}
		if _, dup := byMAC[port.MAC]; dup {
			continue
		}
		byMAC[port.MAC] = port
		macs = append(macs, port.MAC)
	}

	placeholders, err := run.tx.FindUnmanagedPorts(ctx, macs)
	if err != nil {
		return err
	}

	claimed := make(map[string]struct{})
	for _, ph := range placeholders {
		if _, done := claimed[ph.Lookup]; done {
			continue
		}
		port := byMAC[ph.Lookup]
		if port == nil {
			continue
		}
		claimed[ph.Lookup] = struct{}{}
		run.Claims = append(run.Claims, claim{placeholder: ph, key: identity.KeyFor(port), port: port})
	}
	return nil
}

// snapshot reads the stored records of one category for the owner. Claimed
// ports count as stored since the claim writes the incoming record. Partial
// runs only see the stored records their sections cover, plus those sharing a
// key with an incoming record.
func (o *Orchestrator) snapshot(ctx context.Context, run *Run, c models.Category) ([]models.Asset, error) {
	var stored []models.Asset
	if run.Owner.ItemID != 0 {
		var err error
		stored, err = run.tx.Snapshot(ctx, run.Owner, c)
		if err != nil {
			return nil, err
		}
	}

	if c == models.CategoryNetworkPort && len(run.Claims) > 0 {
		keys := make(map[string]struct{}, len(stored))
		for _, a := range stored {
			keys[identity.KeyFor(a)] = struct{}{}
		}
		for _, cl := range run.Claims {
			if _, exists := keys[cl.key]; !exists {
				stored = append(stored, cl.port)
			}
		}
	}

	if scope := run.Batch.Scopes[c]; run.Context.Partial && scope != nil {
		incoming := make(map[string]struct{}, len(run.Batch.Assets[c]))
		for _, a := range run.Batch.Assets[c] {
			incoming[identity.KeyFor(a)] = struct{}{}
		}
		filtered := stored[:0]
		for _, a := range stored {
			if _, ok := incoming[identity.KeyFor(a)]; ok || scope(a) {
				filtered = append(filtered, a)
			}
		}
		stored = filtered
	}
	return stored, nil
}

// Persist writes the owning item, claims placeholder ports, links sub-items and
// applies every plan.
func (o *Orchestrator) Persist(s sw.StateSwitch, args sw.TransitionArgs) error {
	run, tctx, err := runFrom(s, args)
	if err != nil {
		return err
	}
	ctx := tctx.Ctx

	if run.DryRun || run.Decision.Kind == matching.Ignore {
		return nil
	}

	matcher := o.matcher(run.tx, o.runLogger(run))

	if err := o.persistOwner(ctx, run); err != nil {
		return err
	}

	for _, cl := range run.Claims {
		if err := run.tx.ClaimPort(ctx, cl.placeholder, run.Owner, cl.key, cl.port); err != nil {
			return err
		}
	}

	if err := o.linkItems(ctx, run, matcher); err != nil {
		return err
	}

	for _, c := range models.SubCategories {
		plan := run.Plans[c]
		if plan.Empty() {
			continue
		}
		mutator := invreconcile.NewMutator(run.tx, run.Owner, c)
		if _, err := reconcile.ApplyPlan(ctx, mutator, plan, reconcile.ReconcileOptions{}); err != nil {
			return err
		}
	}

	if err := o.persistVMComputers(ctx, run, matcher); err != nil {
		return err
	}

	run.Agent.ItemType = run.Owner.ItemType
	run.Agent.ItemID = run.Owner.ItemID
	return run.tx.SaveAgent(ctx, run.Agent)
}

// persistOwner creates or updates the owning item. A partial document without
// owner sections leaves an existing item untouched.
func (o *Orchestrator) persistOwner(ctx context.Context, run *Run) error {
	item := run.Item
	if item != nil && item.ID != 0 && run.Context.Partial && !run.Batch.OwnerPresent {
		return nil
	}
	if item == nil {
		item = &models.Item{
			ItemType:  run.Owner.ItemType,
			EntityID:  run.Context.EntityID,
			IsDynamic: run.Context.IsDynamic,
		}
	}
	applyComputer(item, run.Batch.Owner)

	if item.ID != 0 {
		run.Item = item
		return run.tx.UpdateItem(ctx, item)
	}

	if err := run.tx.CreateItem(ctx, item); err != nil {
		return err
	}
	run.Item = item
	run.Owner.ItemID = item.ID
	return o.lock(ctx, run)
}

// linkItems matches monitors, peripherals and printers to standalone items.
// Records the matcher ignores are dropped from their plan.
func (o *Orchestrator) linkItems(ctx context.Context, run *Run, matcher matching.Service) error {
	for _, c := range linkedCategories {
		plan := run.Plans[c]
		if plan.Empty() {
			continue
		}

		kept := plan.Actions[:0]
		for _, action := range plan.Actions {
			linked, ok := action.Item.(models.Linked)
			if action.Type == reconcile.ActionDelete || !ok {
				kept = append(kept, action)
				continue
			}

			decision, err := matcher.MatchOrCreate(ctx, matching.ForLinked(linked))
			if err != nil {
				return fmt.Errorf("%s: %w", c, err)
			}
			switch decision.Kind {
			case matching.Ignore:
				continue
			case matching.Matched:
				linked.SetLinkedID(decision.ItemID)
			case matching.Create:
				item := matching.ItemFromLinked(linked, run.Context.EntityID)
				item.IsDynamic = run.Context.IsDynamic
				if err := run.tx.CreateItem(ctx, item); err != nil {
					return err
				}
				linked.SetLinkedID(item.ID)
			}
			kept = append(kept, action)
		}
		plan.Actions = kept
	}
	return nil
}

// persistVMComputers materializes guests as computers of their own, matched by UUID.
func (o *Orchestrator) persistVMComputers(ctx context.Context, run *Run, matcher matching.Service) error {
	for _, guest := range run.Batch.VMComputers {
		decision, err := matcher.MatchOrCreate(ctx, matching.ForVirtualMachine(guest))
		if err != nil {
			return fmt.Errorf("virtual machine %s: %w", guest.UUID, err)
		}

		var item *models.Item
		switch decision.Kind {
		case matching.Ignore:
			continue
		case matching.Matched:
			item, err = run.tx.GetItem(ctx, models.ItemTypeComputer, decision.ItemID)
			if err != nil {
				return err
			}
		}
		if item == nil {
			item = &models.Item{
				ItemType:  models.ItemTypeComputer,
				EntityID:  run.Context.EntityID,
				IsDynamic: run.Context.IsDynamic,
			}
		}
		applyComputer(item, guest)
		item.IsVirtual = true

		if item.ID == 0 {
			err = run.tx.CreateItem(ctx, item)
		} else {
			err = run.tx.UpdateItem(ctx, item)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the run transaction, or rolls it back for dry runs, and
// archives the raw document of committed runs.
func (o *Orchestrator) Commit(s sw.StateSwitch, args sw.TransitionArgs) error {
	run, tctx, err := runFrom(s, args)
	if err != nil {
		return err
	}

	tx := run.tx
	run.tx = nil
	if run.DryRun {
		if err := tx.Rollback(); err != nil {
			return fmt.Errorf("failed to roll back dry run: %w", err)
		}
		run.release()
		return nil
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit inventory: %w", err)
	}
	run.release()

	if run.Owner.ItemID == 0 || run.Context.NoHistory {
		return nil
	}
	path, err := o.archiver.Archive(tctx.Ctx, run.Owner.ItemType, run.Owner.ItemID, run.Raw)
	if err != nil {
		// The inventory is committed; a missing archive is reported, not fatal.
		archiveErr := fmt.Errorf("failed to archive inventory: %w", err)
		run.addError(archiveErr)
		o.runLogger(run).Warn("Archive failed", zap.Error(archiveErr))
		return nil
	}
	run.ArchivePath = path
	return nil
}

// Abort rolls back the run transaction and releases its locks.
func (o *Orchestrator) Abort(s sw.StateSwitch, args sw.TransitionArgs) error {
	run, _, err := runFrom(s, args)
	if err != nil {
		return err
	}

	if run.tx != nil {
		if err := run.tx.Rollback(); err != nil {
			o.runLogger(run).Warn("Rollback failed", zap.Error(err))
		}
		run.tx = nil
	}
	run.release()
	return nil
}

// LogState logs each state reached by a run.
func (o *Orchestrator) LogState(s sw.StateSwitch, args sw.TransitionArgs) error {
	run, _, err := runFrom(s, args)
	if err != nil {
		return err
	}
	o.runLogger(run).Debug("Inventory state reached")
	return nil
}

func applyComputer(item *models.Item, c *models.Computer) {
	if c == nil {
		return
	}
	item.Name = c.Name
	item.UUID = c.UUID
	item.Serial = c.Serial
	item.OtherSerial = c.OtherSerial
	item.Manufacturer = c.Manufacturer
	item.Model = c.Model
	item.Type = c.Type
	item.IsVirtual = c.IsVirtual
	item.Contact = c.Contact
	item.Domain = c.Domain
	item.Description = c.Description
}
