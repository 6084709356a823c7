package cmd

import (
	"context"
	"fmt"

	"inventory-manager/core/config"
	"inventory-manager/core/database"
	"inventory-manager/core/logger"
	"inventory-manager/core/storage"
	"inventory-manager/feature/integrity"
	"inventory-manager/feature/inventory/archive"
	"inventory-manager/feature/inventory/asset"
	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/pipeline"
	"inventory-manager/feature/inventory/store"

	"go.uber.org/zap"
)

// app bundles the components every command builds from configuration.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	client storage.Client
}

// bootstrap loads configuration, then opens the logger, the database and the
// storage client. The schema is migrated when migrate is set.
func bootstrap(ctx context.Context, migrate bool) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	logg = logg.With(zap.String("driver", cfg.Database.Driver))

	st := store.New(db)
	if migrate {
		if err := st.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate inventory schema: %w", err)
		}
	}

	// The minio client connects lazily; nothing is dialed until first use.
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &app{cfg: cfg, logger: logg, store: st, client: client}, nil
}

// orchestrator wires the inventory pipeline from configuration.
func (a *app) orchestrator(ctx context.Context) (*pipeline.Orchestrator, error) {
	inv := a.cfg.Inventory

	dict, err := dictionary.New(dictionary.Options{
		Source:    inv.DictionarySource,
		USBIDs:    inv.USBIDsPath,
		PCIIDs:    inv.PCIIDsPath,
		RulesPath: inv.DictionaryRulesPath,
		Client:    a.client,
		Bucket:    a.cfg.Storage.Bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	if inv.ArchiveDriver == archive.DriverObject {
		created, err := storage.EnsureBucket(ctx, a.client, a.cfg.Storage.Bucket, a.cfg.Storage.Region)
		if err != nil {
			return nil, err
		}
		if created {
			a.logger.Info("Created archive bucket", zap.String("bucket", a.cfg.Storage.Bucket))
		}
	}

	archiver, err := archive.New(inv.ArchiveDriver, inv.ArchiveDir, a.client, a.cfg.Storage.Bucket, inv.ArchivePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create archiver: %w", err)
	}

	var locker store.Locker
	if a.cfg.Database.Driver == database.DriverSQLite {
		locker = store.NewMemoryLocker(inv.LockTimeout())
	} else {
		locker = store.NewGormLocker(a.store.DB(), inv.LockTimeout(), a.logger)
	}

	return pipeline.New(a.store, inv, a.logger,
		pipeline.WithRegistry(asset.DefaultRegistry(dict)),
		pipeline.WithArchiver(archiver),
		pipeline.WithLocker(locker),
	)
}

// integrityOptions lists what the bucket must hold for the configured drivers.
func (a *app) integrityOptions() integrity.Options {
	inv := a.cfg.Inventory
	opts := integrity.Options{Bucket: a.cfg.Storage.Bucket}
	if inv.ArchiveDriver == archive.DriverObject {
		opts.Folders = append(opts.Folders, inv.ArchivePrefix)
	}
	if inv.DictionarySource == dictionary.SourceObject {
		opts.DictionaryObjects = append(opts.DictionaryObjects, inv.USBIDsPath, inv.PCIIDsPath)
	}
	return opts
}
