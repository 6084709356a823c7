package integrity

import (
	"context"

	"inventory-manager/core/storage"
	"inventory-manager/feature/integrity/checks"
	"inventory-manager/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options selects what the object storage checks look for.
type Options struct {
	// Bucket holds archived inventories and id tables.
	Bucket string
	// Folders must exist in the bucket (e.g. the archive prefix).
	Folders []string
	// DictionaryObjects are id table keys required by the object dictionary source.
	DictionaryObjects []string
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	db     *gorm.DB
	opts   Options
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(client storage.Client, db *gorm.DB, opts Options, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		db:     db,
		opts:   opts,
		logger: logger,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.opts.Bucket, s.opts.Folders)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.opts.Bucket, s.logger, missing)
}

// CheckDictionary returns the id table objects missing from the bucket.
func (s *Service) CheckDictionary(ctx context.Context) ([]string, error) {
	return checks.CheckObjects(ctx, s.client, s.opts.Bucket, s.opts.DictionaryObjects)
}

// CheckServer compares the inventory tables with their models.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db, models.Tables())
}
