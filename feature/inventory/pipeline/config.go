package pipeline

import (
	"time"

	"inventory-manager/feature/inventory/asset"
)

// Config holds configuration for the inventory pipeline.
type Config struct {
	// ParseOSFullName derives OS name, version and edition from the full name.
	ParseOSFullName bool `mapstructure:"parse_os_full_name" default:"true"`
	// CreateVMComputers materializes virtual machines as their own computers.
	CreateVMComputers bool `mapstructure:"create_vm_computers" default:"false"`
	// DefaultEntityID is the entity new items are placed in.
	DefaultEntityID uint `mapstructure:"default_entity_id" default:"0"`
	// DynamicItems flags items and sub-entities created by inventory as dynamic.
	DynamicItems bool `mapstructure:"dynamic_items" default:"true"`
	// ArchiveDriver selects where raw documents are archived (file, object, none).
	ArchiveDriver string `mapstructure:"archive_driver" default:"file"`
	// ArchiveDir is the root directory of the file archive driver.
	ArchiveDir string `mapstructure:"archive_dir" default:"./var/inventories"`
	// ArchivePrefix is the object key prefix of the object archive driver.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"inventories"`
	// NoHistory skips archiving the raw documents of committed runs.
	NoHistory bool `mapstructure:"no_history" default:"false"`
	// LockTimeoutSeconds bounds the wait for an owning item lock.
	LockTimeoutSeconds int `mapstructure:"lock_timeout_seconds" default:"30"`
	// USBIDsPath and PCIIDsPath locate the id tables for the file and object sources.
	USBIDsPath string `mapstructure:"usb_ids_path" default:""`
	PCIIDsPath string `mapstructure:"pci_ids_path" default:""`
	// DictionarySource selects where id tables are loaded from (embedded, file, object).
	DictionarySource string `mapstructure:"dictionary_source" default:"embedded"`
	// DictionaryRulesPath points to an optional software/printer rules file.
	DictionaryRulesPath string `mapstructure:"dictionary_rules_path" default:""`
}

// LockTimeout returns the lock wait bound as a duration.
func (c Config) LockTimeout() time.Duration {
	if c.LockTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.LockTimeoutSeconds) * time.Second
}

// AssetOptions returns the normalizer switches of the configuration.
func (c Config) AssetOptions() asset.Options {
	return asset.Options{
		ParseOSFullName:   c.ParseOSFullName,
		CreateVMComputers: c.CreateVMComputers,
	}
}
