package pipeline

import (
	"context"
	"fmt"
	"time"

	"inventory-manager/core/metrics"
	"inventory-manager/feature/inventory/archive"
	"inventory-manager/feature/inventory/asset"
	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/matching"
	"inventory-manager/feature/inventory/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatcherFactory builds the matching service used within one run's transaction.
type MatcherFactory func(finder matching.Finder, logger *zap.Logger) matching.Service

// Orchestrator drives inventory documents through validation, normalization,
// reconciliation and persistence.
type Orchestrator struct {
	cfg       Config
	store     *store.Store
	locker    store.Locker
	archiver  archive.Archiver
	registry  *asset.Registry
	validator document.Validator
	matcher   MatcherFactory
	logger    *zap.Logger
	sm        *RunStateMachine
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLocker sets the per-item locker. The default is an in-process locker.
func WithLocker(l store.Locker) Option {
	return func(o *Orchestrator) { o.locker = l }
}

// WithArchiver sets where committed documents are archived.
func WithArchiver(a archive.Archiver) Option {
	return func(o *Orchestrator) { o.archiver = a }
}

// WithRegistry sets the normalizer registry.
func WithRegistry(r *asset.Registry) Option {
	return func(o *Orchestrator) { o.registry = r }
}

// WithValidator sets the document schema validator.
func WithValidator(v document.Validator) Option {
	return func(o *Orchestrator) { o.validator = v }
}

// WithMatcher sets the matching service factory.
func WithMatcher(f MatcherFactory) Option {
	return func(o *Orchestrator) { o.matcher = f }
}

// New creates an orchestrator over a store.
func New(st *store.Store, cfg Config, logger *zap.Logger, opts ...Option) (*Orchestrator, error) {
	if st == nil {
		return nil, ErrNoStore
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	o := &Orchestrator{
		cfg:    cfg,
		store:  st,
		logger: logger,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.locker == nil {
		o.locker = store.NewMemoryLocker(cfg.LockTimeout())
	}
	if o.archiver == nil {
		o.archiver = archive.Discard{}
	}
	if o.registry == nil {
		o.registry = asset.DefaultRegistry(dictionary.Default())
	}
	if o.validator == nil {
		o.validator = document.NewSchemaValidator()
	}
	if o.matcher == nil {
		o.matcher = func(finder matching.Finder, logger *zap.Logger) matching.Service {
			return matching.NewRuleMatcher(finder, logger)
		}
	}
	o.sm = NewRunStateMachine(o)

	return o, nil
}

// SubmitOptions controls a single submission.
type SubmitOptions struct {
	// DryRun computes every plan and rolls the transaction back.
	DryRun bool
}

// Submit processes one raw inventory document. The returned result is always
// set; the error is the fatal error that aborted the run, if any.
func (o *Orchestrator) Submit(ctx context.Context, raw []byte, opts SubmitOptions) (*Result, error) {
	run := newRun(uuid.NewString(), raw, opts.DryRun)

	defer func() {
		if run.tx != nil {
			_ = run.tx.Rollback()
			run.tx = nil
		}
		run.release()
	}()

	err := o.sm.Run(run, &HandlerContext{Ctx: ctx})

	metrics.ObserveRun(run.itemType(), string(run.State()), run.Started)

	res := run.result()
	log := o.runLogger(run)
	if err != nil {
		log.Error("Inventory aborted", zap.Error(err))
	} else {
		log.Info("Inventory processed",
			zap.String("item_type", res.ItemType),
			zap.Uint("item_id", res.ItemID),
			zap.Bool("dry_run", res.DryRun),
			zap.Int("errors", len(res.Errors)),
		)
	}
	return res, err
}

func (o *Orchestrator) runLogger(run *Run) *zap.Logger {
	return o.logger.With(
		zap.String("run_id", run.ID),
		zap.String("device_id", run.Meta.DeviceID),
		zap.String("state", string(run.State())),
	)
}

func (o *Orchestrator) lock(ctx context.Context, run *Run) error {
	started := time.Now()
	release, err := o.locker.Lock(ctx, run.Owner, run.ID)
	metrics.LockWaitSummary.WithLabelValues(run.Owner.ItemType).Observe(time.Since(started).Seconds())
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", run.Owner, err)
	}
	run.releases = append(run.releases, release)
	return nil
}
