package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"inventory-manager/core/reconcile"
	"inventory-manager/feature/inventory/archive"
	"inventory-manager/feature/inventory/asset"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/store"

	sw "github.com/filanov/stateswitch"
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

	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testConfig() Config {
	return Config{ParseOSFullName: true, DefaultEntityID: 1, DynamicItems: true, LockTimeoutSeconds: 1}
}

func newOrchestrator(t *testing.T, st *store.Store, opts ...Option) *Orchestrator {
	o, err := New(st, testConfig(), nil, opts...)
	require.NoError(t, err)
	return o
}

func inventoryDoc(t *testing.T, content map[string]any, extra map[string]any) []byte {
	content["versionclient"] = "GLPI-Agent_v1.7"
	doc := map[string]any{
		"deviceid": "pc01-2024-01-01-10-00-00",
		"itemtype": "Computer",
		"content":  content,
	}
	for k, v := range extra {
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func networksContent() map[string]any {
	return map[string]any{
		"hardware": map[string]any{"name": "pc01", "uuid": "4C4C4544-0042"},
		"networks": []any{
			map[string]any{"description": "eth0", "macaddr": "AA:BB:CC:DD:EE:FF", "ipaddress": "192.168.1.10"},
		},
	}
}

func TestSubmitCommitsNewComputer(t *testing.T) {
	st := setupTestStore(t, "pipeline_commit")
	dir := t.TempDir()
	o := newOrchestrator(t, st, WithArchiver(&archive.FileArchiver{Dir: dir}))
	ctx := context.Background()

	content := networksContent()
	content["monitors"] = []any{map[string]any{"name": "P2419H", "manufacturer": "Dell", "serial": "CN0ABC"}}
	raw := inventoryDoc(t, content, nil)

	res, err := o.Submit(ctx, raw, SubmitOptions{})
	require.NoError(t, err)

	assert.Equal(t, string(StateCommitted), res.State)
	assert.False(t, res.Failed)
	assert.Empty(t, res.Errors)
	require.NotZero(t, res.ItemID)
	assert.Equal(t, models.ItemTypeComputer, res.ItemType)
	assert.Equal(t, 1, res.Plans[string(models.CategoryNetworkPort)].Creates)
	assert.Equal(t, 1, res.Plans[string(models.CategoryIPAddress)].Creates)

	item, err := st.GetItem(ctx, models.ItemTypeComputer, res.ItemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "pc01", item.Name)
	assert.Equal(t, uint(1), item.EntityID)
	assert.True(t, item.IsDynamic)

	owner := store.Owner{ItemType: models.ItemTypeComputer, ItemID: res.ItemID}
	ports, err := st.Snapshot(ctx, owner, models.CategoryNetworkPort)
	require.NoError(t, err)
	require.Len(t, ports, 1)
	port := ports[0].(*models.NetworkPort)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", port.MAC)
	assert.Equal(t, []string{"192.168.1.10"}, port.IPAddresses)

	monitors, err := st.Snapshot(ctx, owner, models.CategoryMonitor)
	require.NoError(t, err)
	require.Len(t, monitors, 1)
	linked := monitors[0].(*models.Monitor).LinkedID
	require.NotZero(t, linked)
	monitor, err := st.GetItem(ctx, models.ItemTypeMonitor, linked)
	require.NoError(t, err)
	require.NotNil(t, monitor)
	assert.Equal(t, "CN0ABC", monitor.Serial)

	agent, err := st.FindAgent(ctx, "pc01-2024-01-01-10-00-00")
	require.NoError(t, err)
	require.NotNil(t, agent)
	assert.Equal(t, res.ItemID, agent.ItemID)
	assert.Equal(t, "GLPI-Agent_v1.7", agent.Version)

	require.NotEmpty(t, res.Archive)
	archived, err := os.ReadFile(filepath.Join(dir, archive.RelativePath(models.ItemTypeComputer, res.ItemID)))
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(archived))
}

func TestSubmitIsIdempotent(t *testing.T) {
	st := setupTestStore(t, "pipeline_idempotent")
	o := newOrchestrator(t, st)
	ctx := context.Background()

	content := networksContent()
	content["softwares"] = []any{
		map[string]any{"name": "Firefox", "publisher": "Mozilla", "version": "128.0"},
	}
	content["monitors"] = []any{map[string]any{"name": "P2419H", "serial": "CN0ABC"}}
	raw := inventoryDoc(t, content, nil)

	first, err := o.Submit(ctx, raw, SubmitOptions{})
	require.NoError(t, err)

	second, err := o.Submit(ctx, raw, SubmitOptions{})
	require.NoError(t, err)

	assert.Equal(t, first.ItemID, second.ItemID)
	for category, summary := range second.Plans {
		assert.Zero(t, summary.Creates, category)
		assert.Zero(t, summary.Updates, category)
		assert.Zero(t, summary.Deletes, category)
	}
}

func TestSubmitUpdatesAndDeletes(t *testing.T) {
	st := setupTestStore(t, "pipeline_update")
	o := newOrchestrator(t, st)
	ctx := context.Background()

	content := networksContent()
	content["softwares"] = []any{
		map[string]any{"name": "Firefox", "publisher": "Mozilla", "version": "128.0"},
		map[string]any{"name": "Thunderbird", "publisher": "Mozilla", "version": "115.0"},
	}
	first, err := o.Submit(ctx, inventoryDoc(t, content, nil), SubmitOptions{})
	require.NoError(t, err)

	content = networksContent()
	content["softwares"] = []any{
		map[string]any{"name": "Firefox", "publisher": "Mozilla", "version": "129.0"},
	}
	second, err := o.Submit(ctx, inventoryDoc(t, content, nil), SubmitOptions{})
	require.NoError(t, err)
	assert.Equal(t, first.ItemID, second.ItemID)

	summary := second.Plans[string(models.CategorySoftware)]
	assert.Equal(t, 1, summary.Creates)
	assert.Equal(t, 2, summary.Deletes)

	owner := store.Owner{ItemType: models.ItemTypeComputer, ItemID: second.ItemID}
	installs, err := st.Snapshot(ctx, owner, models.CategorySoftware)
	require.NoError(t, err)
	require.Len(t, installs, 1)
	assert.Equal(t, "129.0", installs[0].(*models.SoftwareInstall).Version)
}

func TestSubmitAborts(t *testing.T) {
	tests := []struct {
		name   string
		raw    func(t *testing.T) []byte
		target any
	}{
		{
			name: "unknown top-level key",
			raw: func(t *testing.T) []byte {
				return inventoryDoc(t, networksContent(), map[string]any{"bogus": true})
			},
			target: new(*document.SchemaValidationError),
		},
		{
			name: "invalid json",
			raw: func(t *testing.T) []byte {
				return []byte(`{"deviceid": `)
			},
			target: new(*document.SchemaValidationError),
		},
		{
			name: "unsupported section",
			raw: func(t *testing.T) []byte {
				content := networksContent()
				content["flux_capacitors"] = []any{map[string]any{"name": "x"}}
				return inventoryDoc(t, content, nil)
			},
			target: new(*document.UnsupportedSectionError),
		},
		{
			name: "missing agent version",
			raw: func(t *testing.T) []byte {
				raw, err := json.Marshal(map[string]any{
					"deviceid": "pc01-2024-01-01-10-00-00",
					"content":  networksContent(),
				})
				require.NoError(t, err)
				return raw
			},
			target: new(*document.MetadataError),
		},
		{
			name: "operating system on a printer",
			raw: func(t *testing.T) []byte {
				content := networksContent()
				content["operatingsystem"] = map[string]any{"name": "Debian"}
				return inventoryDoc(t, content, map[string]any{"itemtype": "Printer"})
			},
			target: new(*asset.OwnerTypeError),
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := setupTestStore(t, fmt.Sprintf("pipeline_abort_%d", i))
			o := newOrchestrator(t, st)
			ctx := context.Background()

			res, err := o.Submit(ctx, tt.raw(t), SubmitOptions{})
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.As(err, tt.target))
			}

			assert.Equal(t, string(StateAborted), res.State)
			assert.True(t, res.Failed)
			assert.NotEmpty(t, res.Errors)

			agent, err := st.FindAgent(ctx, "pc01-2024-01-01-10-00-00")
			require.NoError(t, err)
			assert.Nil(t, agent)

			var items int64
			require.NoError(t, st.DB().Model(&models.Item{}).Count(&items).Error)
			assert.Zero(t, items)
		})
	}
}

func TestSubmitDryRun(t *testing.T) {
	st := setupTestStore(t, "pipeline_dryrun")
	o := newOrchestrator(t, st)
	ctx := context.Background()

	res, err := o.Submit(ctx, inventoryDoc(t, networksContent(), nil), SubmitOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, res.DryRun)
	assert.Equal(t, string(StateCommitted), res.State)
	assert.Equal(t, 1, res.Plans[string(models.CategoryNetworkPort)].Creates)
	assert.Empty(t, res.Archive)

	agent, err := st.FindAgent(ctx, "pc01-2024-01-01-10-00-00")
	require.NoError(t, err)
	assert.Nil(t, agent)

	var entries int64
	require.NoError(t, st.DB().Model(&models.Entry{}).Count(&entries).Error)
	assert.Zero(t, entries)
}

func TestSubmitPartialKeepsAbsentCategories(t *testing.T) {
	st := setupTestStore(t, "pipeline_partial")
	o := newOrchestrator(t, st)
	ctx := context.Background()

	content := networksContent()
	content["softwares"] = []any{map[string]any{"name": "Firefox", "publisher": "Mozilla", "version": "128.0"}}
	content["cpus"] = []any{map[string]any{"name": "Intel Core i7", "serial": "CPU1"}}
	content["memories"] = []any{map[string]any{"caption": "DIMM0", "serialnumber": "MEM1", "capacity": "8192"}}
	full, err := o.Submit(ctx, inventoryDoc(t, content, nil), SubmitOptions{})
	require.NoError(t, err)

	partial := map[string]any{
		"hardware":  map[string]any{"name": "pc01", "uuid": "4C4C4544-0042"},
		"softwares": []any{map[string]any{"name": "Firefox", "publisher": "Mozilla", "version": "129.0"}},
		"cpus":      []any{map[string]any{"name": "Intel Core i9", "serial": "CPU2"}},
	}
	res, err := o.Submit(ctx, inventoryDoc(t, partial, map[string]any{"partial": true}), SubmitOptions{})
	require.NoError(t, err)
	assert.Equal(t, full.ItemID, res.ItemID)

	_, planned := res.Plans[string(models.CategoryNetworkPort)]
	assert.False(t, planned)

	owner := store.Owner{ItemType: models.ItemTypeComputer, ItemID: res.ItemID}
	ports, err := st.Snapshot(ctx, owner, models.CategoryNetworkPort)
	require.NoError(t, err)
	assert.Len(t, ports, 1)

	components, err := st.Snapshot(ctx, owner, models.CategoryComponent)
	require.NoError(t, err)
	kinds := make(map[string]int)
	for _, a := range components {
		kinds[a.(*models.Component).Kind]++
	}
	assert.Equal(t, 1, kinds["processor"])
	assert.Equal(t, 1, kinds["memory"])
}

func TestSubmitPartialWithoutOwnerSectionsKeepsItem(t *testing.T) {
	st := setupTestStore(t, "pipeline_partial_owner")
	o := newOrchestrator(t, st)
	ctx := context.Background()

	full, err := o.Submit(ctx, inventoryDoc(t, networksContent(), nil), SubmitOptions{})
	require.NoError(t, err)

	partial := map[string]any{
		"softwares": []any{map[string]any{"name": "Firefox", "publisher": "Mozilla", "version": "129.0"}},
	}
	res, err := o.Submit(ctx, inventoryDoc(t, partial, map[string]any{"partial": true}), SubmitOptions{})
	require.NoError(t, err)
	assert.Equal(t, string(StateCommitted), res.State)
	assert.Equal(t, full.ItemID, res.ItemID)
	assert.Equal(t, 1, res.Plans[string(models.CategorySoftware)].Creates)

	item, err := st.GetItem(ctx, models.ItemTypeComputer, res.ItemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "pc01", item.Name)
	assert.Equal(t, "4C4C4544-0042", item.UUID)

	// The next full inventory still matches the same item.
	again, err := o.Submit(ctx, inventoryDoc(t, networksContent(), nil), SubmitOptions{})
	require.NoError(t, err)
	assert.Equal(t, full.ItemID, again.ItemID)
}

func TestSubmitPartialKeepsOtherPeripheralSources(t *testing.T) {
	st := setupTestStore(t, "pipeline_partial_peripherals")
	o := newOrchestrator(t, st)
	ctx := context.Background()

	hardware := map[string]any{"name": "pc01", "uuid": "4C4C4544-0042"}
	mouse := map[string]any{"name": "Logitech Mouse", "pointingtype": 3}
	content := map[string]any{
		"hardware":   hardware,
		"usbdevices": []any{map[string]any{"name": "Yubikey", "serial": "YK1"}},
		"inputs":     []any{mouse},
	}
	full, err := o.Submit(ctx, inventoryDoc(t, content, nil), SubmitOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, full.Plans[string(models.CategoryPeripheral)].Creates)

	partial := map[string]any{
		"hardware": hardware,
		"inputs":   []any{mouse, map[string]any{"name": "Keyboard K120", "layout": "fr"}},
	}
	res, err := o.Submit(ctx, inventoryDoc(t, partial, map[string]any{"partial": true}), SubmitOptions{})
	require.NoError(t, err)
	plan := res.Plans[string(models.CategoryPeripheral)]
	assert.Equal(t, 1, plan.Creates)
	assert.Zero(t, plan.Updates)
	assert.Zero(t, plan.Deletes)

	owner := store.Owner{ItemType: models.ItemTypeComputer, ItemID: res.ItemID}
	stored, err := st.Snapshot(ctx, owner, models.CategoryPeripheral)
	require.NoError(t, err)
	names := make([]string, 0, len(stored))
	for _, a := range stored {
		names = append(names, a.(*models.Peripheral).Name)
	}
	assert.ElementsMatch(t, []string{"Yubikey", "Logitech Mouse", "Keyboard K120"}, names)
}

func TestSubmitNoHistorySkipsArchive(t *testing.T) {
	st := setupTestStore(t, "pipeline_no_history")
	dir := t.TempDir()
	cfg := testConfig()
	cfg.NoHistory = true
	o, err := New(st, cfg, nil, WithArchiver(&archive.FileArchiver{Dir: dir}))
	require.NoError(t, err)

	res, err := o.Submit(context.Background(), inventoryDoc(t, networksContent(), nil), SubmitOptions{})
	require.NoError(t, err)
	assert.Equal(t, string(StateCommitted), res.State)
	assert.Empty(t, res.Archive)

	_, err = os.Stat(filepath.Join(dir, archive.RelativePath(models.ItemTypeComputer, res.ItemID)))
	assert.True(t, os.IsNotExist(err))
}

func TestSubmitClaimsUnmanagedPorts(t *testing.T) {
	st := setupTestStore(t, "pipeline_unmanaged")
	o := newOrchestrator(t, st)
	ctx := context.Background()

	_, err := st.CreateUnmanaged(ctx, "switch-port-12", []*models.NetworkPort{
		{Name: "unknown", MAC: "aa:bb:cc:dd:ee:ff", InstantiationType: "NetworkPortEthernet", LogicalNumber: 1},
	})
	require.NoError(t, err)

	res, err := o.Submit(ctx, inventoryDoc(t, networksContent(), nil), SubmitOptions{})
	require.NoError(t, err)
	assert.Zero(t, res.Plans[string(models.CategoryNetworkPort)].Creates)

	n, err := st.CountUnmanaged(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	owner := store.Owner{ItemType: models.ItemTypeComputer, ItemID: res.ItemID}
	ports, err := st.Snapshot(ctx, owner, models.CategoryNetworkPort)
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, "eth0", ports[0].(*models.NetworkPort).Name)

	addrs, err := st.Snapshot(ctx, owner, models.CategoryIPAddress)
	require.NoError(t, err)
	assert.Len(t, addrs, 1)
}

func TestSubmitUnresolvedOwnerCommitsAgent(t *testing.T) {
	st := setupTestStore(t, "pipeline_ignored")
	o := newOrchestrator(t, st)
	ctx := context.Background()

	res, err := o.Submit(ctx, inventoryDoc(t, map[string]any{}, nil), SubmitOptions{})
	require.NoError(t, err)

	assert.Equal(t, string(StateCommitted), res.State)
	assert.False(t, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "no owning Computer resolved")
	assert.Zero(t, res.ItemID)

	agent, err := st.FindAgent(ctx, "pc01-2024-01-01-10-00-00")
	require.NoError(t, err)
	require.NotNil(t, agent)
	assert.Zero(t, agent.ItemID)
}

func TestSubmitMaterializesVMComputers(t *testing.T) {
	st := setupTestStore(t, "pipeline_vms")
	cfg := testConfig()
	cfg.CreateVMComputers = true
	o, err := New(st, cfg, nil)
	require.NoError(t, err)
	ctx := context.Background()

	content := networksContent()
	content["virtualmachines"] = []any{
		map[string]any{"name": "guest1", "uuid": "ABCD-0001", "memory": "2048 MB", "vmtype": "kvm"},
		map[string]any{"name": "no-uuid"},
	}
	res, err := o.Submit(ctx, inventoryDoc(t, content, nil), SubmitOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Plans[string(models.CategoryVM)].Creates)

	guest, err := st.FindItemByUUID(ctx, models.ItemTypeComputer, "abcd-0001")
	require.NoError(t, err)
	require.NotNil(t, guest)
	assert.True(t, guest.IsVirtual)
	assert.Equal(t, "guest1", guest.Name)
	assert.NotEqual(t, res.ItemID, guest.ID)

	// The guest is matched by UUID regardless of case and updated in place.
	content = networksContent()
	content["virtualmachines"] = []any{
		map[string]any{"name": "guest1-renamed", "uuid": "abcd-0001", "memory": "2048 MB", "vmtype": "kvm"},
	}
	_, err = o.Submit(ctx, inventoryDoc(t, content, nil), SubmitOptions{})
	require.NoError(t, err)

	again, err := st.FindItemByUUID(ctx, models.ItemTypeComputer, "ABCD-0001")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, guest.ID, again.ID)
	assert.Equal(t, "guest1-renamed", again.Name)
}

func TestSubmitLockTimeout(t *testing.T) {
	st := setupTestStore(t, "pipeline_lock")
	locker := store.NewMemoryLocker(50 * time.Millisecond)
	o := newOrchestrator(t, st, WithLocker(locker))
	ctx := context.Background()

	raw := inventoryDoc(t, networksContent(), nil)
	first, err := o.Submit(ctx, raw, SubmitOptions{})
	require.NoError(t, err)

	release, err := locker.Lock(ctx, store.Owner{ItemType: models.ItemTypeComputer, ItemID: first.ItemID}, "other")
	require.NoError(t, err)
	defer release()

	res, err := o.Submit(ctx, raw, SubmitOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrLockTimeout)
	assert.Equal(t, string(StateAborted), res.State)
}

func TestArchiveFailureIsNotFatal(t *testing.T) {
	st := setupTestStore(t, "pipeline_archive")
	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o600))
	o := newOrchestrator(t, st, WithArchiver(&archive.FileArchiver{Dir: blocked}))

	res, err := o.Submit(context.Background(), inventoryDoc(t, networksContent(), nil), SubmitOptions{})
	require.NoError(t, err)
	assert.False(t, res.Failed)
	assert.Equal(t, string(StateCommitted), res.State)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "failed to archive")
}

type stubTransitioner struct {
	calls []sw.TransitionType
	fail  sw.TransitionType
}

func (s *stubTransitioner) step(t sw.TransitionType) error {
	s.calls = append(s.calls, t)
	if t == s.fail {
		return errors.New("boom")
	}
	return nil
}

func (s *stubTransitioner) Validate(sw.StateSwitch, sw.TransitionArgs) error        { return s.step(Validate) }
func (s *stubTransitioner) ExtractMetadata(sw.StateSwitch, sw.TransitionArgs) error { return s.step(ExtractMetadata) }
func (s *stubTransitioner) ResolveOwner(sw.StateSwitch, sw.TransitionArgs) error    { return s.step(ResolveOwner) }
func (s *stubTransitioner) Normalize(sw.StateSwitch, sw.TransitionArgs) error       { return s.step(Normalize) }
func (s *stubTransitioner) Reconcile(sw.StateSwitch, sw.TransitionArgs) error       { return s.step(Reconcile) }
func (s *stubTransitioner) Persist(sw.StateSwitch, sw.TransitionArgs) error         { return s.step(Persist) }
func (s *stubTransitioner) Commit(sw.StateSwitch, sw.TransitionArgs) error          { return s.step(Commit) }
func (s *stubTransitioner) Abort(sw.StateSwitch, sw.TransitionArgs) error           { return s.step(Abort) }
func (s *stubTransitioner) LogState(sw.StateSwitch, sw.TransitionArgs) error        { return nil }

func TestRunStateMachine(t *testing.T) {
	tests := []struct {
		name  string
		fail  sw.TransitionType
		state sw.State
		calls []sw.TransitionType
	}{
		{
			name:  "every stage runs in order",
			state: StateCommitted,
			calls: []sw.TransitionType{Validate, ExtractMetadata, ResolveOwner, Normalize, Reconcile, Persist, Commit},
		},
		{
			name:  "failure aborts from the current state",
			fail:  Normalize,
			state: StateAborted,
			calls: []sw.TransitionType{Validate, ExtractMetadata, ResolveOwner, Normalize, Abort},
		},
		{
			name:  "commit failure aborts",
			fail:  Commit,
			state: StateAborted,
			calls: []sw.TransitionType{Validate, ExtractMetadata, ResolveOwner, Normalize, Reconcile, Persist, Commit, Abort},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &stubTransitioner{fail: tt.fail}
			m := NewRunStateMachine(handler)
			run := newRun("run-1", nil, false)

			err := m.Run(run, &HandlerContext{Ctx: context.Background()})
			if tt.fail != "" {
				require.Error(t, err)
				assert.Equal(t, err, run.Fatal())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.state, run.State())
			assert.Equal(t, tt.calls, handler.calls)
		})
	}
}

func TestResultSummaries(t *testing.T) {
	run := newRun("run-2", nil, true)
	run.Plans[models.CategorySoftware] = &reconcile.ReconcilePlan[models.Asset]{
		Summary: reconcile.PlanSummary{TotalItems: 2, Creates: 1, Unchanged: 1},
	}
	run.addError(errors.New("first"))

	res := run.result()
	assert.Equal(t, "run-2", res.RunID)
	assert.True(t, res.DryRun)
	assert.False(t, res.Failed)
	assert.Equal(t, []string{"first"}, res.Errors)
	assert.Equal(t, 1, res.Plans["software"].Creates)
	assert.Equal(t, models.ItemTypeComputer, res.ItemType)
}
