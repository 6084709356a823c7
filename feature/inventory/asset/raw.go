package asset

import (
	"inventory-manager/feature/inventory/normalize"
)

type rawHardware struct {
	Name           string `mapstructure:"name"`
	UUID           string `mapstructure:"uuid"`
	VMSystem       string `mapstructure:"vmsystem"`
	ChassisType    string `mapstructure:"chassis_type"`
	Workgroup      string `mapstructure:"workgroup"`
	LastLoggedUser string `mapstructure:"lastloggeduser"`
	Description    string `mapstructure:"description"`
	WinOwner       string `mapstructure:"winowner"`
	WinCompany     string `mapstructure:"wincompany"`
	WinProdKey     string `mapstructure:"winprodkey"`
	WinProdID      string `mapstructure:"winprodid"`
}

type rawBios struct {
	SManufacturer string `mapstructure:"smanufacturer"`
	MManufacturer string `mapstructure:"mmanufacturer"`
	BManufacturer string `mapstructure:"bmanufacturer"`
	SModel        string `mapstructure:"smodel"`
	MModel        string `mapstructure:"mmodel"`
	SSN           string `mapstructure:"ssn"`
	AssetTag      string `mapstructure:"assettag"`
	Type          string `mapstructure:"type"`
	BDate         string `mapstructure:"bdate"`
	BVersion      string `mapstructure:"bversion"`
}

type rawOperatingSystem struct {
	Name          string `mapstructure:"name"`
	FullName      string `mapstructure:"full_name"`
	Version       string `mapstructure:"version"`
	ServicePack   string `mapstructure:"service_pack"`
	Arch          string `mapstructure:"arch"`
	KernelName    string `mapstructure:"kernel_name"`
	KernelVersion string `mapstructure:"kernel_version"`
	HostID        string `mapstructure:"hostid"`
	InstallDate   string `mapstructure:"install_date"`
}

type rawNetwork struct {
	Description string `mapstructure:"description"`
	MACAddr     string `mapstructure:"macaddr"`
	Type        string `mapstructure:"type"`
	WWN         string `mapstructure:"wwn"`
	PCIID       string `mapstructure:"pciid"`
	Status      string `mapstructure:"status"`
	MTU         int    `mapstructure:"mtu"`
	Driver      string `mapstructure:"driver"`
}

type rawController struct {
	Name         string `mapstructure:"name"`
	Caption      string `mapstructure:"caption"`
	Type         string `mapstructure:"type"`
	Manufacturer string `mapstructure:"manufacturer"`
	PCIID        string `mapstructure:"pciid"`
	VendorID     string `mapstructure:"vendorid"`
	ProductID    string `mapstructure:"productid"`
}

type rawMonitor struct {
	Name         string `mapstructure:"name"`
	Caption      string `mapstructure:"caption"`
	Description  string `mapstructure:"description"`
	Manufacturer string `mapstructure:"manufacturer"`
	Serial       string `mapstructure:"serial"`
	AltSerial    string `mapstructure:"altserial"`
	Type         string `mapstructure:"type"`
}

type rawUSBDevice struct {
	Name         string `mapstructure:"name"`
	Caption      string `mapstructure:"caption"`
	Manufacturer string `mapstructure:"manufacturer"`
	Serial       string `mapstructure:"serial"`
	VendorID     string `mapstructure:"vendorid"`
	ProductID    string `mapstructure:"productid"`
}

type rawInput struct {
	Name         string `mapstructure:"name"`
	Caption      string `mapstructure:"caption"`
	Description  string `mapstructure:"description"`
	Manufacturer string `mapstructure:"manufacturer"`
	Layout       string `mapstructure:"layout"`
	PointingType int    `mapstructure:"pointingtype"`
	Type         string `mapstructure:"type"`
}

type rawPrinter struct {
	Name         string `mapstructure:"name"`
	Manufacturer string `mapstructure:"manufacturer"`
	Serial       string `mapstructure:"serial"`
	Driver       string `mapstructure:"driver"`
	Port         string `mapstructure:"port"`
	Network      bool   `mapstructure:"network"`
}

type rawSoftware struct {
	Name         string `mapstructure:"name"`
	Version      string `mapstructure:"version"`
	Publisher    string `mapstructure:"publisher"`
	Manufacturer string `mapstructure:"manufacturer"`
	Arch         string `mapstructure:"arch"`
	InstallDate  string `mapstructure:"install_date"`
	Comments     string `mapstructure:"comments"`
	GUID         string `mapstructure:"guid"`
	System       string `mapstructure:"system_category"`
}

type rawVirtualMachine struct {
	Name      string `mapstructure:"name"`
	UUID      string `mapstructure:"uuid"`
	Memory    string `mapstructure:"memory"`
	VCPU      int    `mapstructure:"vcpu"`
	Status    string `mapstructure:"status"`
	Subsystem string `mapstructure:"subsystem"`
	VMType    string `mapstructure:"vmtype"`
	Comment   string `mapstructure:"comment"`
	MAC       string `mapstructure:"mac"`
}

// decode ignores conversion errors: unconvertible fields stay empty.
func decode(m map[string]any, out any) {
	_ = normalize.Decode(normalize.Record(m), out)
}

func stringField(m map[string]any, key string) string {
	return normalize.String(normalize.Record(m), key)
}
