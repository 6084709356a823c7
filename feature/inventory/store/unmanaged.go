package store

import (
	"context"
	"fmt"

	"inventory-manager/feature/inventory/identity"
	"inventory-manager/feature/inventory/models"
)

// CreateUnmanaged registers a placeholder device holding ports whose real owner
// has not reported yet.
func (s *Store) CreateUnmanaged(ctx context.Context, name string, ports []*models.NetworkPort) (*models.UnmanagedDevice, error) {
	device := &models.UnmanagedDevice{Name: name}
	if err := s.db.WithContext(ctx).Create(device).Error; err != nil {
		return nil, fmt.Errorf("failed to create unmanaged device: %w", err)
	}

	owner := Owner{ItemType: models.ItemTypeUnmanaged, ItemID: device.ID}
	entries := make([]models.Entry, 0, len(ports))
	for _, port := range ports {
		entry, err := NewEntry(owner, identity.KeyFor(port), port)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := s.CreateEntries(ctx, entries); err != nil {
		return nil, err
	}
	return device, nil
}

// FindUnmanagedPorts returns placeholder ports with one of the MACs.
func (s *Store) FindUnmanagedPorts(ctx context.Context, macs []string) ([]models.Entry, error) {
	if len(macs) == 0 {
		return nil, nil
	}
	var rows []models.Entry
	err := s.db.WithContext(ctx).
		Where("item_type = ? AND category = ? AND lookup IN ?", models.ItemTypeUnmanaged, string(models.CategoryNetworkPort), macs).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unmanaged ports: %w", err)
	}
	return rows, nil
}

// ClaimPort attaches a placeholder port to its real owner under the incoming key
// and payload. The placeholder's addresses for that port are dropped; the owner's
// own reconciliation recreates them. The placeholder device is removed once it
// holds no entries.
func (s *Store) ClaimPort(ctx context.Context, placeholder models.Entry, owner Owner, key string, port *models.NetworkPort) error {
	db := s.db.WithContext(ctx)

	entry, err := NewEntry(owner, key, port)
	if err != nil {
		return err
	}

	var existing int64
	if err := db.Model(&models.Entry{}).
		Where("item_type = ? AND item_id = ? AND category = ? AND entry_key = ?", owner.ItemType, owner.ItemID, entry.Category, key).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to check claimed port: %w", err)
	}

	if existing > 0 {
		// The owner already has the port; the placeholder copy is redundant.
		if err := db.Delete(&models.Entry{}, placeholder.ID).Error; err != nil {
			return fmt.Errorf("failed to drop placeholder port %d: %w", placeholder.ID, err)
		}
	} else {
		err := db.Model(&models.Entry{}).Where("id = ?", placeholder.ID).Updates(map[string]any{
			"item_type": owner.ItemType,
			"item_id":   owner.ItemID,
			"entry_key": key,
			"lookup":    entry.Lookup,
			"payload":   entry.Payload,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to claim placeholder port %d: %w", placeholder.ID, err)
		}
	}

	err = db.Where("item_type = ? AND item_id = ? AND category = ? AND parent = ?",
		models.ItemTypeUnmanaged, placeholder.ItemID, string(models.CategoryIPAddress), placeholder.Key).
		Delete(&models.Entry{}).Error
	if err != nil {
		return fmt.Errorf("failed to drop placeholder addresses: %w", err)
	}

	var remaining int64
	if err := db.Model(&models.Entry{}).
		Where("item_type = ? AND item_id = ?", models.ItemTypeUnmanaged, placeholder.ItemID).
		Count(&remaining).Error; err != nil {
		return fmt.Errorf("failed to count placeholder entries: %w", err)
	}
	if remaining == 0 {
		if err := db.Delete(&models.UnmanagedDevice{}, placeholder.ItemID).Error; err != nil {
			return fmt.Errorf("failed to delete unmanaged device %d: %w", placeholder.ItemID, err)
		}
	}
	return nil
}

// CountUnmanaged returns the number of placeholder devices.
func (s *Store) CountUnmanaged(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.UnmanagedDevice{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count unmanaged devices: %w", err)
	}
	return n, nil
}
