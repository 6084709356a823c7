package asset

import (
	"context"
	"errors"
	"testing"

	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func computerRun() *RunContext {
	return &RunContext{ItemType: models.ItemTypeComputer, EntityID: 1, Options: Options{ParseOSFullName: true}}
}

func TestComputerNormalizer(t *testing.T) {
	n := NewComputerNormalizer(dictionary.Default())

	tests := []struct {
		name    string
		content document.Content
		check   func(t *testing.T, c *models.Computer)
	}{
		{
			name: "hp serial prefix is stripped",
			content: document.Content{
				"bios": map[string]any{"smanufacturer": "Hewlett-Packard", "ssn": " SCZC1234 ", "smodel": "EliteBook"},
			},
			check: func(t *testing.T, c *models.Computer) {
				assert.Equal(t, "CZC1234", c.Serial)
				assert.Equal(t, "Hewlett-Packard", c.Manufacturer)
				assert.Equal(t, "EliteBook", c.Model)
			},
		},
		{
			name: "other manufacturers keep the serial",
			content: document.Content{
				"bios": map[string]any{"mmanufacturer": "Dell Inc.", "ssn": "S123"},
			},
			check: func(t *testing.T, c *models.Computer) {
				assert.Equal(t, "S123", c.Serial)
			},
		},
		{
			name: "bsd jail",
			content: document.Content{
				"hardware": map[string]any{"name": "jail1", "uuid": "abc", "vmsystem": "BSDJail"},
				"bios":     map[string]any{"ssn": "X1"},
			},
			check: func(t *testing.T, c *models.Computer) {
				assert.Empty(t, c.Serial)
				assert.Equal(t, "abc-jail1", c.UUID)
				assert.True(t, c.IsVirtual)
			},
		},
		{
			name: "type priority on physical hosts",
			content: document.Content{
				"hardware": map[string]any{"vmsystem": "Physical"},
				"bios":     map[string]any{"type": "Notebook", "mmodel": "X1"},
			},
			check: func(t *testing.T, c *models.Computer) {
				assert.Equal(t, "Notebook", c.Type)
				assert.False(t, c.IsVirtual)
			},
		},
		{
			name: "chassis type wins",
			content: document.Content{
				"hardware": map[string]any{"chassis_type": "Laptop"},
				"bios":     map[string]any{"type": "Notebook"},
			},
			check: func(t *testing.T, c *models.Computer) {
				assert.Equal(t, "Laptop", c.Type)
			},
		},
		{
			name: "otherserial from accountinfo",
			content: document.Content{
				"accountinfo": []any{map[string]any{"keyname": "TAG", "keyvalue": "INV-42"}},
			},
			check: func(t *testing.T, c *models.Computer) {
				assert.Equal(t, "INV-42", c.OtherSerial)
			},
		},
		{
			name: "accountinfo keyname is case sensitive",
			content: document.Content{
				"accountinfo": []any{map[string]any{"keyname": "tag", "keyvalue": "INV-43"}},
			},
			check: func(t *testing.T, c *models.Computer) {
				assert.Empty(t, c.OtherSerial)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := n.Normalize(context.Background(), computerRun(), tt.content)
			require.NoError(t, err)
			require.NotNil(t, res.Owner)
			tt.check(t, res.Owner)
		})
	}
}

func TestFirmwareAndBatteryDates(t *testing.T) {
	dict := dictionary.Default()

	res, err := NewFirmwareNormalizer(dict).Normalize(context.Background(), computerRun(), document.Content{
		"bios": map[string]any{"bmanufacturer": "Dell Inc.", "bversion": "1.2", "bdate": "31/12/2020"},
	})
	require.NoError(t, err)
	require.Len(t, res.Assets, 1)
	fw := res.Assets[0].(*models.Firmware)
	assert.Equal(t, "Dell Inc. BIOS", fw.Designation)
	assert.Equal(t, "2020-12-31", fw.Date)

	res, err = NewBatteryNormalizer(dict).Normalize(context.Background(), computerRun(), document.Content{
		"batteries": []any{
			map[string]any{"manufacturer": "LGC", "chemistry": "Li-ion", "voltage": "abc", "date": "01/02/2020"},
			map[string]any{"name": "Main", "voltage": 11100, "date": "2020-01-01"},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Assets, 2)

	first := res.Assets[0].(*models.Battery)
	assert.Equal(t, "LGC BIOS", first.Designation)
	assert.Equal(t, "Li-ion", first.Chemistry)
	assert.Equal(t, 0, first.Voltage)
	assert.Equal(t, "2020-01-02", first.Date)

	second := res.Assets[1].(*models.Battery)
	assert.Equal(t, "Main", second.Designation)
	assert.Equal(t, 11100, second.Voltage)
	assert.Empty(t, second.Date)
}

func TestOperatingSystemFullName(t *testing.T) {
	n := NewOperatingSystemNormalizer(dictionary.Default())

	tests := []struct {
		name     string
		os       map[string]any
		expected models.OperatingSystem
	}{
		{
			name:     "windows",
			os:       map[string]any{"full_name": "Microsoft Windows 10 Professionnel", "arch": "64-bit"},
			expected: models.OperatingSystem{Name: "Windows", FullName: "Microsoft Windows 10 Professionnel", Version: "10", Edition: "Professionnel", Arch: "x86_64"},
		},
		{
			name:     "debian codename",
			os:       map[string]any{"full_name": "Debian GNU/Linux 12 (bookworm)"},
			expected: models.OperatingSystem{Name: "Debian", FullName: "Debian GNU/Linux 12 (bookworm)", Version: "12 (bookworm)"},
		},
		{
			name:     "edition suffix",
			os:       map[string]any{"full_name": "Windows Server 2003 Standard Edition"},
			expected: models.OperatingSystem{Name: "Windows Server 2003", FullName: "Windows Server 2003 Standard Edition", Edition: "Standard Edition"},
		},
		{
			name:     "distro with arch",
			os:       map[string]any{"full_name": "Fedora 39 (x86_64)"},
			expected: models.OperatingSystem{Name: "Fedora", FullName: "Fedora 39 (x86_64)", Version: "39", Arch: "x86_64"},
		},
		{
			name:     "explicit fields are kept",
			os:       map[string]any{"name": "Ubuntu", "version": "22.04", "full_name": "Fedora 39 (x86_64)", "service_pack": "0"},
			expected: models.OperatingSystem{Name: "Ubuntu", FullName: "Fedora 39 (x86_64)", Version: "22.04", Arch: "x86_64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := n.Normalize(context.Background(), computerRun(), document.Content{"operatingsystem": tt.os})
			require.NoError(t, err)
			require.Len(t, res.Assets, 1)
			assert.Equal(t, tt.expected, *res.Assets[0].(*models.OperatingSystem))
		})
	}
}

func TestOperatingSystemInstallDateAndLicense(t *testing.T) {
	n := NewOperatingSystemNormalizer(dictionary.Default())
	rc := computerRun()
	rc.Options.ParseOSFullName = false

	res, err := n.Normalize(context.Background(), rc, document.Content{
		"operatingsystem": map[string]any{"name": "Windows", "install_date": "01/02/2021", "full_name": "Microsoft Windows 10 Pro"},
		"hardware":        map[string]any{"winprodkey": "XXXX-YYYY", "winowner": "ACME"},
	})
	require.NoError(t, err)
	os := res.Assets[0].(*models.OperatingSystem)
	assert.Equal(t, "2021-01-02", os.InstallDate)
	assert.Equal(t, "XXXX-YYYY", os.LicenseNumber)
	assert.Equal(t, "ACME", os.Owner)
	assert.Empty(t, os.Version)
}

func TestComputerOnlyNormalizersRejectOtherOwners(t *testing.T) {
	dict := dictionary.Default()
	rc := &RunContext{ItemType: "NetworkEquipment"}

	for _, n := range []Normalizer{
		NewOperatingSystemNormalizer(dict),
		NewPeripheralNormalizer(dict),
		NewVirtualMachineNormalizer(),
	} {
		t.Run(n.Name(), func(t *testing.T) {
			_, err := n.Normalize(context.Background(), rc, document.Content{})
			var ownerErr *OwnerTypeError
			require.True(t, errors.As(err, &ownerErr))
			assert.Equal(t, "NetworkEquipment", ownerErr.ItemType)
		})
	}
}

func TestNetworkNormalizer(t *testing.T) {
	n := NewNetworkNormalizer(dictionary.Default())

	res, err := n.Normalize(context.Background(), computerRun(), document.Content{
		"controllers": []any{
			map[string]any{"name": "eth0 controller", "pciid": "8086:1521"},
		},
		"networks": []any{
			map[string]any{"description": "eth0", "macaddr": "AA:BB:CC:DD:EE:FF", "ipaddress": "192.168.1.10", "speed": "1000000000"},
			map[string]any{"description": "eth0", "macaddr": "aa:bb:cc:dd:ee:ff", "ipaddress": "192.168.1.11"},
			map[string]any{"description": "lo", "virtualdev": "1", "ipaddress": "127.0.0.1"},
			map[string]any{"wwn": "50:01"},
			map[string]any{"speed": "100"},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Assets, 1)
	card := res.Assets[0].(*models.NetworkCard)
	assert.Equal(t, "eth0", card.Designation)
	assert.Equal(t, "Intel Corporation", card.Manufacturer)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", card.MAC)

	ports := res.Derived[models.CategoryNetworkPort]
	require.Len(t, ports, 3)

	eth0 := ports[0].(*models.NetworkPort)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", eth0.MAC)
	assert.Equal(t, InstantiationEthernet, eth0.InstantiationType)
	assert.Equal(t, 1, eth0.LogicalNumber)
	assert.Equal(t, 1000, eth0.Speed)
	assert.Equal(t, []string{"192.168.1.10", "192.168.1.11"}, eth0.IPAddresses)

	lo := ports[1].(*models.NetworkPort)
	assert.True(t, lo.Virtual)
	assert.Equal(t, 0, lo.LogicalNumber)
	assert.Equal(t, InstantiationLocal, lo.InstantiationType)

	fc := ports[2].(*models.NetworkPort)
	assert.Equal(t, InstantiationFiberchannel, fc.InstantiationType)

	ips := res.Derived[models.CategoryIPAddress]
	require.Len(t, ips, 3)
	assert.Equal(t, "192.168.1.10", ips[0].(*models.IPAddress).Address)
	assert.Equal(t, 4, ips[0].(*models.IPAddress).Version)
}

func TestNetworkVirtualDeviceMerge(t *testing.T) {
	n := NewNetworkNormalizer(dictionary.Default())

	res, err := n.Normalize(context.Background(), computerRun(), document.Content{
		"networks": []any{
			map[string]any{"description": "eth0", "macaddr": "aa:bb:cc:00:00:01", "virtualdev": float64(1)},
			map[string]any{"description": "eth0", "macaddr": "aa:bb:cc:00:00:01", "virtualdev": true},
			map[string]any{"description": "br0", "macaddr": "aa:bb:cc:00:00:02", "virtualdev": true},
			map[string]any{"description": "br0", "macaddr": "aa:bb:cc:00:00:02"},
		},
	})
	require.NoError(t, err)

	ports := res.Derived[models.CategoryNetworkPort]
	require.Len(t, ports, 2)
	for _, a := range ports {
		port := a.(*models.NetworkPort)
		assert.True(t, port.Virtual, port.Name)
		assert.Equal(t, 0, port.LogicalNumber, port.Name)
	}
}

func TestNetworkControllerClaimedOnce(t *testing.T) {
	n := NewNetworkNormalizer(dictionary.Default())

	res, err := n.Normalize(context.Background(), computerRun(), document.Content{
		"controllers": []any{map[string]any{"name": "Ethernet"}},
		"networks": []any{
			map[string]any{"description": "ethernet", "macaddr": "00:00:00:00:00:01"},
			map[string]any{"description": "Ethernet", "macaddr": "00:00:00:00:00:02"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, res.Assets, 1)
	assert.Len(t, res.Derived[models.CategoryNetworkPort], 2)
}

func TestPeripheralNormalizer(t *testing.T) {
	n := NewPeripheralNormalizer(dictionary.Default())

	res, err := n.Normalize(context.Background(), computerRun(), document.Content{
		"usbdevices": []any{
			map[string]any{"vendorid": "046D", "productid": "C31C"},
		},
		"inputs": []any{
			map[string]any{"name": "Keyboard K120", "layout": "fr"},
			map[string]any{"name": "Touchpad", "pointingtype": 7},
			map[string]any{"caption": "Optical", "pointingtype": "9"},
			map[string]any{"name": "Other", "pointingtype": 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Assets, 4)

	keyboard := res.Assets[0].(*models.Peripheral)
	assert.Equal(t, "Keyboard K120", keyboard.Name)
	assert.Equal(t, "Logitech, Inc.", keyboard.Manufacturer)
	assert.Equal(t, "Keyboard", keyboard.Type)

	assert.Equal(t, "Touch Pad", res.Assets[1].(*models.Peripheral).Type)
	assert.Equal(t, "Mouse - Optical Sensor", res.Assets[2].(*models.Peripheral).Type)
	assert.Empty(t, res.Assets[3].(*models.Peripheral).Type)
}

func TestPrinterNormalizer(t *testing.T) {
	printers, err := dictionary.NewRuleSet([]dictionary.RuleConfig{
		{Pattern: "^Microsoft XPS", Ignore: true},
		{Pattern: "^HP (.*)$", Name: "HP $1", Manufacturer: "Hewlett-Packard"},
	})
	require.NoError(t, err)
	dict := dictionary.Default()
	dict.Printers = printers

	res, err := NewPrinterNormalizer(dict).Normalize(context.Background(), computerRun(), document.Content{
		"printers": []any{
			map[string]any{"name": "Microsoft XPS Document Writer"},
			map[string]any{"name": "HP LaserJet", "port": "USB001", "serial": "ABC/"},
			map[string]any{"name": "Office", "port": "IP_10.0.0.5", "network": "1"},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Assets, 2)

	hp := res.Assets[0].(*models.Printer)
	assert.Equal(t, "HP LaserJet", hp.Name)
	assert.Equal(t, "Hewlett-Packard", hp.Manufacturer)
	assert.Equal(t, "ABC", hp.Serial)
	assert.True(t, hp.HaveUSB)

	office := res.Assets[1].(*models.Printer)
	assert.False(t, office.HaveUSB)
	assert.True(t, office.Network)
}

func TestSoftwareSecondPass(t *testing.T) {
	n := NewSoftwareNormalizer(dictionary.Default())

	res, err := n.Normalize(context.Background(), computerRun(), document.Content{
		"operatingsystem": map[string]any{"name": "Windows"},
		"softwares": []any{
			map[string]any{"name": "7-Zip", "version": "19.00", "publisher": "Igor Pavlov"},
			map[string]any{"name": "7-Zip", "version": "19.00"},
			map[string]any{"name": "Notepad++", "version": "8.1"},
			map[string]any{"name": "Notepad++", "version": "8.1"},
			map[string]any{"name": "7-Zip", "version": "19.00", "publisher": "Igor Pavlov", "install_date": "02/03/2021"},
			map[string]any{"version": "1.0"},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Assets, 2)

	zip := res.Assets[0].(*models.SoftwareInstall)
	assert.Equal(t, "7-Zip", zip.Name)
	assert.Equal(t, "Igor Pavlov", zip.Manufacturer)
	assert.Equal(t, uint(1), zip.EntityID)
	assert.Equal(t, "Windows", zip.OSRef)
	assert.Equal(t, "2021-03-02", zip.InstallDate)

	notepad := res.Assets[1].(*models.SoftwareInstall)
	assert.Equal(t, "Notepad++", notepad.Name)
	assert.Empty(t, notepad.Manufacturer)
}

func TestMemoryMB(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{raw: "2048", expected: 2048},
		{raw: "2048 MB", expected: 2048},
		{raw: "2gb", expected: 2000},
		{raw: "2048000KB", expected: 2048},
		{raw: "2048000000B", expected: 2048},
		{raw: "lots", expected: 0},
		{raw: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, MemoryMB(tt.raw))
		})
	}
}

func TestVirtualMachineComputers(t *testing.T) {
	n := NewVirtualMachineNormalizer()
	content := document.Content{
		"virtualmachines": []any{
			map[string]any{"name": "guest1", "uuid": "u-1", "memory": "1 GB", "vcpu": "2", "vmtype": "kvm"},
			map[string]any{"name": "guest2"},
		},
	}

	res, err := n.Normalize(context.Background(), computerRun(), content)
	require.NoError(t, err)
	require.Len(t, res.Assets, 2)
	assert.Empty(t, res.VMComputers)
	assert.Equal(t, 1000, res.Assets[0].(*models.VirtualMachine).Memory)
	assert.Equal(t, 2, res.Assets[0].(*models.VirtualMachine).VCPU)

	rc := computerRun()
	rc.Options.CreateVMComputers = true
	res, err = n.Normalize(context.Background(), rc, content)
	require.NoError(t, err)
	require.Len(t, res.VMComputers, 1)
	assert.Equal(t, "u-1", res.VMComputers[0].UUID)
	assert.True(t, res.VMComputers[0].IsVirtual)
}

func TestComponentNormalizerScope(t *testing.T) {
	n := NewComponentNormalizer(dictionary.Default())
	content := document.Content{
		"cpus":     []any{map[string]any{"name": "Core i7", "manufacturer": "intel", "speed": "2800", "core": 4}},
		"memories": []any{map[string]any{"caption": "DIMM0", "capacity": "8192", "serialnumber": "M1"}},
	}

	res, err := n.Normalize(context.Background(), computerRun(), content)
	require.NoError(t, err)
	require.Len(t, res.Assets, 2)

	cpu := res.Assets[0].(*models.Component)
	assert.Equal(t, "processor", cpu.Kind)
	assert.Equal(t, "Intel Corporation", cpu.Manufacturer)
	assert.Equal(t, 2800, cpu.Frequency)

	scope := n.Scope(document.Content{"cpus": []any{}})
	assert.True(t, scope(cpu))
	assert.False(t, scope(res.Assets[1]))
}

func TestPeripheralNormalizerScope(t *testing.T) {
	n := NewPeripheralNormalizer(dictionary.Default())
	usb := &models.Peripheral{Name: "Yubikey", Source: "usbdevices"}
	input := &models.Peripheral{Name: "Mouse", Source: "inputs"}
	legacy := &models.Peripheral{Name: "Webcam"}

	scope := n.Scope(document.Content{"inputs": []any{}})
	assert.False(t, scope(usb))
	assert.True(t, scope(input))
	assert.False(t, scope(legacy))

	scope = n.Scope(document.Content{"usbdevices": []any{}})
	assert.True(t, scope(usb))
	assert.False(t, scope(input))
	assert.True(t, scope(legacy))

	res, err := n.Normalize(context.Background(), computerRun(), document.Content{
		"usbdevices": []any{map[string]any{"name": "Yubikey", "serial": "YK1"}},
		"inputs":     []any{map[string]any{"name": "yubikey", "layout": "us"}, map[string]any{"name": "Mouse", "pointingtype": 3}},
	})
	require.NoError(t, err)
	require.Len(t, res.Assets, 2)
	assert.Equal(t, "usbdevices", res.Assets[0].(*models.Peripheral).Source)
	assert.Equal(t, "inputs", res.Assets[1].(*models.Peripheral).Source)
}

func TestRegistryDispatch(t *testing.T) {
	reg := DefaultRegistry(dictionary.Default())

	batch, err := reg.Dispatch(context.Background(), computerRun(), document.Content{
		"versionclient": "GLPI-Agent_v1.5",
		"hardware":      map[string]any{"name": "pc01"},
		"networks":      []any{map[string]any{"description": "eth0", "macaddr": "aa:bb:cc:dd:ee:ff"}},
		"processes":     []any{map[string]any{"cmd": "init"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "pc01", batch.Owner.Name)
	assert.Len(t, batch.Assets[models.CategoryNetworkPort], 1)
	assert.True(t, batch.OwnerPresent)
	assert.True(t, batch.Present[models.CategoryNetworkPort])
	assert.False(t, batch.Present[models.CategorySoftware])

	_, err = reg.Dispatch(context.Background(), computerRun(), document.Content{"teleporters": []any{}})
	var unsupported *document.UnsupportedSectionError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "teleporters", unsupported.Section)
}
