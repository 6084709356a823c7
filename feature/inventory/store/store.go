package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-manager/feature/inventory/models"

	"gorm.io/gorm"
)

// Owner addresses the item a set of entries belongs to.
type Owner struct {
	ItemType string
	ItemID   uint
}

func (o Owner) String() string {
	return fmt.Sprintf("%s#%d", o.ItemType, o.ItemID)
}

// Store is the gorm-backed storage of inventoried items and their sub-entities.
// A Store returned by Begin is bound to one transaction.
type Store struct {
	db *gorm.DB
	tx bool
}

// New creates a store on a database connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying connection (or transaction).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the inventory tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.Tables()...); err != nil {
		return fmt.Errorf("failed to migrate inventory schema: %w", err)
	}
	return nil
}

// Begin starts a transaction and returns a store bound to it.
func (s *Store) Begin(ctx context.Context) (*Store, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &Store{db: tx, tx: true}, nil
}

// Commit commits a store returned by Begin.
func (s *Store) Commit() error {
	if !s.tx {
		return fmt.Errorf("store is not bound to a transaction")
	}
	return s.db.Commit().Error
}

// Rollback aborts a store returned by Begin.
func (s *Store) Rollback() error {
	if !s.tx {
		return fmt.Errorf("store is not bound to a transaction")
	}
	return s.db.Rollback().Error
}

// FindAgent returns the agent registered for a device, or nil.
func (s *Store) FindAgent(ctx context.Context, deviceID string) (*models.Agent, error) {
	var agent models.Agent
	err := s.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load agent %s: %w", deviceID, err)
	}
	return &agent, nil
}

// SaveAgent inserts or updates an agent record.
func (s *Store) SaveAgent(ctx context.Context, agent *models.Agent) error {
	if err := s.db.WithContext(ctx).Save(agent).Error; err != nil {
		return fmt.Errorf("failed to save agent %s: %w", agent.DeviceID, err)
	}
	return nil
}

// GetItem loads an item by type and id, or returns nil.
func (s *Store) GetItem(ctx context.Context, itemType string, id uint) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).Where("item_type = ? AND id = ?", itemType, id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d: %w", itemType, id, err)
	}
	return &item, nil
}

// CreateItem inserts an item and sets its id.
func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", item.ItemType, err)
	}
	return nil
}

// UpdateItem rewrites every column of an existing item.
func (s *Store) UpdateItem(ctx context.Context, item *models.Item) error {
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to update %s %d: %w", item.ItemType, item.ID, err)
	}
	return nil
}

// FindItemByUUID matches UUIDs case-insensitively.
func (s *Store) FindItemByUUID(ctx context.Context, itemType, uuid string) (*models.Item, error) {
	return s.findItem(ctx, "item_type = ? AND LOWER(uuid) = ?", itemType, strings.ToLower(uuid))
}

// FindItemBySerial matches serials exactly.
func (s *Store) FindItemBySerial(ctx context.Context, itemType, serial string) (*models.Item, error) {
	return s.findItem(ctx, "item_type = ? AND serial = ?", itemType, serial)
}

// FindItemByName matches names case-insensitively.
func (s *Store) FindItemByName(ctx context.Context, itemType, name string) (*models.Item, error) {
	return s.findItem(ctx, "item_type = ? AND LOWER(name) = ?", itemType, strings.ToLower(name))
}

// FindItemByLookup returns the item owning an entry of a category with one of the
// lookup values (port MAC, IP address).
func (s *Store) FindItemByLookup(ctx context.Context, itemType string, category models.Category, values []string) (*models.Item, error) {
	if len(values) == 0 {
		return nil, nil
	}
	var entry models.Entry
	err := s.db.WithContext(ctx).
		Where("item_type = ? AND category = ? AND lookup IN ?", itemType, string(category), values).
		Order("item_id").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s entries: %w", category, err)
	}
	return s.GetItem(ctx, itemType, entry.ItemID)
}

func (s *Store) findItem(ctx context.Context, query string, args ...any) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).Where(query, args...).Order("id").First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

// Entries returns the raw entry rows of one category of an owner.
func (s *Store) Entries(ctx context.Context, owner Owner, category models.Category) ([]models.Entry, error) {
	var rows []models.Entry
	err := s.db.WithContext(ctx).
		Where("item_type = ? AND item_id = ? AND category = ?", owner.ItemType, owner.ItemID, string(category)).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s entries of %s: %w", category, owner, err)
	}
	return rows, nil
}

// Snapshot decodes the stored records of one category of an owner.
func (s *Store) Snapshot(ctx context.Context, owner Owner, category models.Category) ([]models.Asset, error) {
	rows, err := s.Entries(ctx, owner, category)
	if err != nil {
		return nil, err
	}
	assets := make([]models.Asset, 0, len(rows))
	for _, row := range rows {
		a, err := models.Decode(category, row.Payload)
		if err != nil {
			return nil, fmt.Errorf("entry %d of %s: %w", row.ID, owner, err)
		}
		assets = append(assets, a)
	}
	return assets, nil
}

// NewEntry builds the storage row of an asset.
func NewEntry(owner Owner, key string, a models.Asset) (models.Entry, error) {
	payload, err := models.Encode(a)
	if err != nil {
		return models.Entry{}, err
	}
	entry := models.Entry{
		ItemType: owner.ItemType,
		ItemID:   owner.ItemID,
		Category: string(a.Category()),
		Key:      key,
		Payload:  payload,
	}
	if l, ok := a.(models.Lookup); ok {
		entry.Lookup = l.LookupValue()
	}
	if c, ok := a.(models.Child); ok {
		entry.Parent = c.ParentKey()
	}
	return entry, nil
}

// CreateEntries inserts entry rows.
func (s *Store) CreateEntries(ctx context.Context, entries []models.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(entries, 100).Error; err != nil {
		return fmt.Errorf("failed to insert entries: %w", err)
	}
	return nil
}

// UpdateEntry rewrites the payload of an existing entry.
func (s *Store) UpdateEntry(ctx context.Context, entry models.Entry) error {
	result := s.db.WithContext(ctx).Model(&models.Entry{}).
		Where("item_type = ? AND item_id = ? AND category = ? AND entry_key = ?", entry.ItemType, entry.ItemID, entry.Category, entry.Key).
		Updates(map[string]any{
			"payload":    entry.Payload,
			"lookup":     entry.Lookup,
			"parent":     entry.Parent,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update entry %s: %w", entry.Key, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("entry %s of %s#%d not found", entry.Key, entry.ItemType, entry.ItemID)
	}
	return nil
}

// DeleteEntries removes entries of one category by key.
func (s *Store) DeleteEntries(ctx context.Context, owner Owner, category models.Category, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Where("item_type = ? AND item_id = ? AND category = ? AND entry_key IN ?", owner.ItemType, owner.ItemID, string(category), keys).
		Delete(&models.Entry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s entries of %s: %w", category, owner, err)
	}
	return nil
}
