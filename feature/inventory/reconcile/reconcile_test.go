package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"inventory-manager/core/reconcile"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T, name string) *store.Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	s := store.New(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestAdapter_PortComparison(t *testing.T) {
	a := NewAdapter(models.CategoryNetworkPort)
	assert.Equal(t, "networkport", a.Name())

	stored := &models.NetworkPort{Name: "eth0", MAC: "aa:bb", InstantiationType: "Ethernet", LogicalNumber: 1, Speed: 100}
	incoming := &models.NetworkPort{Name: "eth0", MAC: "aa:bb", InstantiationType: "Ethernet", LogicalNumber: 1, Speed: 1000, IPAddresses: []string{"10.0.0.1"}}

	assert.Equal(t, a.ExtractKey(stored), a.ExtractKey(incoming))
	assert.Empty(t, a.CompareFields(stored, incoming))

	incoming.InstantiationType = "Wifi"
	assert.Equal(t, []string{"instantiation_type: stored=Ethernet incoming=Wifi"}, a.CompareFields(stored, incoming))
}

func TestPlan(t *testing.T) {
	incoming := []models.Asset{
		&models.SoftwareInstall{Name: "7-Zip", Version: "19.00"},
		&models.SoftwareInstall{Name: "Firefox", Version: "120", Arch: "x86_64"},
	}
	stored := []models.Asset{
		&models.SoftwareInstall{Name: "Firefox", Version: "120"},
		&models.SoftwareInstall{Name: "Paint", Version: "1"},
	}

	plan, err := Plan(models.CategorySoftware, incoming, stored)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Summary.Creates)
	assert.Equal(t, 1, plan.Summary.Updates)
	assert.Equal(t, 1, plan.Summary.Deletes)

	_, err = Plan(models.CategorySoftware, incoming, append(stored, &models.SoftwareInstall{Name: "paint", Version: "1"}))
	var conflict *reconcile.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "software", conflict.Collection)
}

func TestApplyPlan_Idempotent(t *testing.T) {
	s := setupTestStore(t, "reconcile_apply")
	ctx := context.Background()
	owner := store.Owner{ItemType: models.ItemTypeComputer, ItemID: 1}

	run := func(incoming []models.Asset) *reconcile.ReconcilePlan[models.Asset] {
		snapshot, err := s.Snapshot(ctx, owner, models.CategoryNetworkPort)
		require.NoError(t, err)
		plan, err := Plan(models.CategoryNetworkPort, incoming, snapshot)
		require.NoError(t, err)
		_, err = reconcile.ApplyPlan[models.Asset](ctx, NewMutator(s, owner, models.CategoryNetworkPort), plan, reconcile.ReconcileOptions{})
		require.NoError(t, err)
		return plan
	}

	ports := []models.Asset{
		&models.NetworkPort{Name: "eth0", MAC: "aa:bb", InstantiationType: "Ethernet", LogicalNumber: 1},
		&models.NetworkPort{Name: "wlan0", MAC: "cc:dd", InstantiationType: "Wifi", LogicalNumber: 1},
	}

	first := run(ports)
	assert.Equal(t, 2, first.Summary.Creates)

	second := run(ports)
	assert.True(t, second.Empty())

	third := run(ports[:1])
	assert.Equal(t, 1, third.Summary.Deletes)

	snapshot, err := s.Snapshot(ctx, owner, models.CategoryNetworkPort)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "eth0", snapshot[0].(*models.NetworkPort).Name)
}

func TestMutator_RejectsForeignCategory(t *testing.T) {
	s := setupTestStore(t, "reconcile_foreign")
	m := NewMutator(s, store.Owner{ItemType: models.ItemTypeComputer, ItemID: 1}, models.CategoryMonitor)

	err := m.Create(context.Background(), "k", &models.Printer{Name: "p"})
	assert.Error(t, err)
}
