package config

import (
	"fmt"
	"reflect"
	"strings"

	"inventory-manager/core/database"
	"inventory-manager/core/logger"
	"inventory-manager/core/server"
	"inventory-manager/core/storage"
	"inventory-manager/feature/inventory/archive"
	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/pipeline"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Inventory holds configuration for the inventory pipeline.
	Inventory pipeline.Config `mapstructure:"inventory"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects driver names and source combinations the application cannot wire.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		return fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver)
	}

	inv := c.Inventory
	switch inv.ArchiveDriver {
	case archive.DriverFile:
		if inv.ArchiveDir == "" {
			return fmt.Errorf("inventory.archive_dir is required by the file archive driver")
		}
	case archive.DriverObject, archive.DriverNone:
	default:
		return fmt.Errorf("inventory.archive_driver: unsupported driver %q", inv.ArchiveDriver)
	}

	switch inv.DictionarySource {
	case dictionary.SourceEmbedded:
	case dictionary.SourceFile, dictionary.SourceObject:
		if inv.USBIDsPath == "" || inv.PCIIDsPath == "" {
			return fmt.Errorf("inventory.usb_ids_path and inventory.pci_ids_path are required by the %s dictionary source", inv.DictionarySource)
		}
	default:
		return fmt.Errorf("inventory.dictionary_source: unsupported source %q", inv.DictionarySource)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
