package models

// Category names a collection of canonical records.
type Category string

const (
	CategoryComputer    Category = "computer"
	CategoryBattery     Category = "battery"
	CategoryFirmware    Category = "firmware"
	CategoryOS          Category = "operatingsystem"
	CategoryNetworkCard Category = "networkcard"
	CategoryNetworkPort Category = "networkport"
	CategoryIPAddress   Category = "ipaddress"
	CategoryMonitor     Category = "monitor"
	CategoryPeripheral  Category = "peripheral"
	CategoryPrinter     Category = "printer"
	CategorySoftware    Category = "software"
	CategoryVM          Category = "virtualmachine"
	CategoryComponent   Category = "component"
)

// SubCategories are the owned collections reconciled per owning item, in apply order.
// Ports precede IP addresses because addresses reference their port key.
var SubCategories = []Category{
	CategoryFirmware,
	CategoryBattery,
	CategoryOS,
	CategoryComponent,
	CategoryNetworkCard,
	CategoryNetworkPort,
	CategoryIPAddress,
	CategoryMonitor,
	CategoryPeripheral,
	CategoryPrinter,
	CategorySoftware,
	CategoryVM,
}

const (
	ItemTypeComputer   = "Computer"
	ItemTypeUnmanaged  = "Unmanaged"
	ItemTypeMonitor    = "Monitor"
	ItemTypePeripheral = "Peripheral"
	ItemTypePrinter    = "Printer"
)
