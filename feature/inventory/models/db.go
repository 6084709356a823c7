package models

import "time"

// Item is an owning or standalone inventoried item (computer, monitor, ...).
type Item struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	ItemType     string    `gorm:"column:item_type;type:varchar(64);index:idx_item_type_uuid;index:idx_item_type_serial"`
	Name         string    `gorm:"column:name;type:varchar(255);index"`
	UUID         string    `gorm:"column:uuid;type:varchar(255);index:idx_item_type_uuid"`
	Serial       string    `gorm:"column:serial;type:varchar(255);index:idx_item_type_serial"`
	OtherSerial  string    `gorm:"column:otherserial;type:varchar(255)"`
	Manufacturer string    `gorm:"column:manufacturer;type:varchar(255)"`
	Model        string    `gorm:"column:model;type:varchar(255)"`
	Type         string    `gorm:"column:type;type:varchar(255)"`
	EntityID     uint      `gorm:"column:entity_id"`
	LocationID   uint      `gorm:"column:location_id"`
	IsDynamic    bool      `gorm:"column:is_dynamic"`
	IsVirtual    bool      `gorm:"column:is_virtual"`
	Contact      string    `gorm:"column:contact;type:varchar(255)"`
	Domain       string    `gorm:"column:domain;type:varchar(255)"`
	Description  string    `gorm:"column:description;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Item) TableName() string {
	return "inventory_items"
}

// Agent maps a reporting device to its owning item.
type Agent struct {
	ID              uint      `gorm:"column:id;primaryKey"`
	DeviceID        string    `gorm:"column:device_id;type:varchar(255);uniqueIndex"`
	Version         string    `gorm:"column:version;type:varchar(255)"`
	ProviderName    string    `gorm:"column:provider_name;type:varchar(255)"`
	ProviderVersion string    `gorm:"column:provider_version;type:varchar(255)"`
	Tag             string    `gorm:"column:tag;type:varchar(255)"`
	ItemType        string    `gorm:"column:item_type;type:varchar(64)"`
	ItemID          uint      `gorm:"column:item_id"`
	LastContact     time.Time `gorm:"column:last_contact"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (Agent) TableName() string {
	return "inventory_agents"
}

// Entry is one persisted sub-entity of an owning item, stored as a JSON payload.
type Entry struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	ItemType  string    `gorm:"column:item_type;type:varchar(64);uniqueIndex:idx_entry_identity,priority:1"`
	ItemID    uint      `gorm:"column:item_id;uniqueIndex:idx_entry_identity,priority:2"`
	Category  string    `gorm:"column:category;type:varchar(64);uniqueIndex:idx_entry_identity,priority:3;index:idx_entry_lookup,priority:1"`
	Key       string    `gorm:"column:entry_key;type:varchar(512);uniqueIndex:idx_entry_identity,priority:4"`
	Lookup    string    `gorm:"column:lookup;type:varchar(255);index:idx_entry_lookup,priority:2"`
	Parent    string    `gorm:"column:parent;type:varchar(512)"`
	Payload   string    `gorm:"column:payload;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Entry) TableName() string {
	return "inventory_entries"
}

// UnmanagedDevice is a placeholder owning ports seen before their real owner.
type UnmanagedDevice struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (UnmanagedDevice) TableName() string {
	return "inventory_unmanaged"
}

// Lock is an advisory lock row held while an inventory writes an item.
type Lock struct {
	ItemType  string    `gorm:"column:item_type;type:varchar(64);primaryKey"`
	ItemID    uint      `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	Owner     string    `gorm:"column:owner;type:varchar(64)"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Lock) TableName() string {
	return "inventory_locks"
}

// Tables lists every gorm model of the inventory schema.
func Tables() []any {
	return []any{&Item{}, &Agent{}, &Entry{}, &UnmanagedDevice{}, &Lock{}}
}
