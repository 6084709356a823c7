package models

// Asset is a canonical record produced by a normalizer.
type Asset interface {
	Category() Category
}

// Lookup is implemented by assets carrying a secondary lookup value (MAC, serial).
type Lookup interface {
	LookupValue() string
}

// Child is implemented by assets attached to another sub-entity by key.
type Child interface {
	ParentKey() string
}

// Linked is implemented by sub-items that are also standalone items
// (monitors, peripherals, printers).
type Linked interface {
	Asset
	LinkedItemType() string
	SetLinkedID(id uint)
}

// Computer is the owning item record.
type Computer struct {
	Name         string `json:"name"`
	UUID         string `json:"uuid"`
	Serial       string `json:"serial"`
	OtherSerial  string `json:"otherserial"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Type         string `json:"type"`
	IsVirtual    bool   `json:"is_virtual"`
	Contact      string `json:"contact"`
	Domain       string `json:"domain"`
	Description  string `json:"description"`
}

func (*Computer) Category() Category { return CategoryComputer }

// Firmware is the BIOS/UEFI of the owning item.
type Firmware struct {
	Designation  string `json:"designation"`
	Manufacturer string `json:"manufacturer"`
	Version      string `json:"version"`
	Date         string `json:"date,omitempty"`
	Type         string `json:"type"`
}

func (*Firmware) Category() Category { return CategoryFirmware }

type Battery struct {
	Designation  string `json:"designation"`
	Manufacturer string `json:"manufacturer"`
	Serial       string `json:"serial"`
	Chemistry    string `json:"chemistry"`
	Capacity     int    `json:"capacity"`
	Voltage      int    `json:"voltage"`
	Date         string `json:"date,omitempty"`
}

func (*Battery) Category() Category    { return CategoryBattery }
func (b *Battery) LookupValue() string { return b.Serial }

type OperatingSystem struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Version       string `json:"version"`
	ServicePack   string `json:"service_pack"`
	Edition       string `json:"edition"`
	Arch          string `json:"arch"`
	KernelName    string `json:"kernel_name"`
	KernelVersion string `json:"kernel_version"`
	HostID        string `json:"host_id"`
	InstallDate   string `json:"install_date,omitempty"`
	LicenseNumber string `json:"license_number"`
	LicenseID     string `json:"license_id"`
	Owner         string `json:"owner"`
	Company       string `json:"company"`
}

func (*OperatingSystem) Category() Category { return CategoryOS }

type NetworkCard struct {
	Designation  string `json:"designation"`
	Manufacturer string `json:"manufacturer"`
	MAC          string `json:"mac"`
	PCIID        string `json:"pciid"`
	Controller   string `json:"controller"`
}

func (*NetworkCard) Category() Category    { return CategoryNetworkCard }
func (c *NetworkCard) LookupValue() string { return c.MAC }

// NetworkPort is compared on name, mac, instantiation_type and logical_number only.
type NetworkPort struct {
	Name              string   `json:"name"`
	MAC               string   `json:"mac"`
	InstantiationType string   `json:"instantiation_type"`
	LogicalNumber     int      `json:"logical_number"`
	Virtual           bool     `json:"virtualdev" cmp:"-"`
	Speed             int      `json:"speed" cmp:"-"`
	WWN               string   `json:"wwn" cmp:"-"`
	Type              string   `json:"type" cmp:"-"`
	Status            string   `json:"status" cmp:"-"`
	MTU               int      `json:"mtu" cmp:"-"`
	Description       string   `json:"description" cmp:"-"`
	IPAddresses       []string `json:"ipaddress" cmp:"-"`
}

func (*NetworkPort) Category() Category    { return CategoryNetworkPort }
func (p *NetworkPort) LookupValue() string { return p.MAC }

// IPAddress is attached to a port through the port identity key.
type IPAddress struct {
	Port    string `json:"port" cmp:"-"`
	Address string `json:"address"`
	Version int    `json:"version"`
}

func (*IPAddress) Category() Category    { return CategoryIPAddress }
func (a *IPAddress) ParentKey() string   { return a.Port }
func (a *IPAddress) LookupValue() string { return a.Address }

type Monitor struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Serial       string `json:"serial"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	LinkedID     uint   `json:"linked_id" cmp:"-"`
}

func (*Monitor) Category() Category     { return CategoryMonitor }
func (m *Monitor) LookupValue() string  { return m.Serial }
func (*Monitor) LinkedItemType() string { return ItemTypeMonitor }
func (m *Monitor) SetLinkedID(id uint)  { m.LinkedID = id }

type Peripheral struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Serial       string `json:"serial"`
	VendorID     string `json:"vendorid"`
	ProductID    string `json:"productid"`
	Caption      string `json:"caption"`
	Type         string `json:"type"`
	// Source is the section the peripheral was reported in.
	Source   string `json:"source"`
	LinkedID uint   `json:"linked_id" cmp:"-"`
}

func (*Peripheral) Category() Category     { return CategoryPeripheral }
func (p *Peripheral) LookupValue() string  { return p.Serial }
func (*Peripheral) LinkedItemType() string { return ItemTypePeripheral }
func (p *Peripheral) SetLinkedID(id uint)  { p.LinkedID = id }

type Printer struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Serial       string `json:"serial"`
	Driver       string `json:"driver"`
	Port         string `json:"port"`
	HaveUSB      bool   `json:"have_usb"`
	Network      bool   `json:"network"`
	LinkedID     uint   `json:"linked_id" cmp:"-"`
}

func (*Printer) Category() Category     { return CategoryPrinter }
func (p *Printer) LookupValue() string  { return p.Serial }
func (*Printer) LinkedItemType() string { return ItemTypePrinter }
func (p *Printer) SetLinkedID(id uint)  { p.LinkedID = id }

// SoftwareInstall is one installed software version on the owning item.
type SoftwareInstall struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Manufacturer string `json:"manufacturer"`
	EntityID     uint   `json:"entity_id"`
	OSRef        string `json:"os_ref"`
	Arch         string `json:"arch"`
	InstallDate  string `json:"install_date,omitempty"`
	Comment      string `json:"comment" cmp:"-"`
	GUID         string `json:"guid" cmp:"-"`
	System       string `json:"system_category" cmp:"-"`
}

func (*SoftwareInstall) Category() Category { return CategorySoftware }

type VirtualMachine struct {
	Name      string `json:"name"`
	UUID      string `json:"uuid"`
	Memory    int    `json:"memory"`
	VCPU      int    `json:"vcpu"`
	Status    string `json:"status"`
	Subsystem string `json:"subsystem"`
	VMType    string `json:"vmtype"`
	Comment   string `json:"comment"`
	MAC       string `json:"mac" cmp:"-"`
}

func (*VirtualMachine) Category() Category    { return CategoryVM }
func (v *VirtualMachine) LookupValue() string { return v.UUID }

// Component is a generic hardware device (cpu, memory, storage, ...).
type Component struct {
	Kind         string `json:"kind"`
	Designation  string `json:"designation"`
	Manufacturer string `json:"manufacturer"`
	Serial       string `json:"serial"`
	Model        string `json:"model"`
	Capacity     int    `json:"capacity"`
	Frequency    int    `json:"frequency"`
	Interface    string `json:"interface"`
	Description  string `json:"description" cmp:"-"`
}

func (*Component) Category() Category    { return CategoryComponent }
func (c *Component) LookupValue() string { return c.Serial }
