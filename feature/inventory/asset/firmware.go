package asset

import (
	"context"
	"strings"

	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/normalize"
)

// biosLabel is appended to the manufacturer to name firmwares, and batteries
// that report no name of their own.
const biosLabel = "BIOS"

// FirmwareNormalizer derives the BIOS firmware record from the bios section.
type FirmwareNormalizer struct {
	dict *dictionary.Dictionary
}

func NewFirmwareNormalizer(dict *dictionary.Dictionary) *FirmwareNormalizer {
	return &FirmwareNormalizer{dict: dict}
}

func (n *FirmwareNormalizer) Name() string                  { return "firmware" }
func (n *FirmwareNormalizer) Sections() []string            { return []string{"bios"} }
func (n *FirmwareNormalizer) Categories() []models.Category { return []models.Category{models.CategoryFirmware} }

func (n *FirmwareNormalizer) Normalize(_ context.Context, _ *RunContext, content document.Content) (*Result, error) {
	var bios rawBios
	decode(content.Object("bios"), &bios)
	if bios.BManufacturer == "" && bios.BVersion == "" && bios.BDate == "" {
		return &Result{}, nil
	}

	fw := &models.Firmware{
		Designation:  labelled(bios.BManufacturer),
		Manufacturer: n.dict.Manufacturers.Resolve(bios.BManufacturer),
		Version:      bios.BVersion,
		Type:         biosLabel,
	}
	if date, ok := normalize.ReformatDate(bios.BDate, normalize.DateOrderYMD); ok {
		fw.Date = date
	}
	return &Result{Assets: []models.Asset{fw}}, nil
}

// BatteryNormalizer normalizes the batteries section.
type BatteryNormalizer struct {
	dict *dictionary.Dictionary
}

func NewBatteryNormalizer(dict *dictionary.Dictionary) *BatteryNormalizer {
	return &BatteryNormalizer{dict: dict}
}

func (n *BatteryNormalizer) Name() string                  { return "battery" }
func (n *BatteryNormalizer) Sections() []string            { return []string{"batteries"} }
func (n *BatteryNormalizer) Categories() []models.Category { return []models.Category{models.CategoryBattery} }

// batteryFields renames agent battery fields to the battery record's names.
var batteryFields = []normalize.FieldMap{
	{From: "name", To: "designation"},
	{From: "chemistry", To: "type"},
	{From: "date", To: "manufacturing_date"},
}

func (n *BatteryNormalizer) Normalize(_ context.Context, _ *RunContext, content document.Content) (*Result, error) {
	res := &Result{}
	for _, entry := range content.List("batteries") {
		r := normalize.ApplyMapping(normalize.Record(entry), batteryFields)
		manufacturer := normalize.String(r, "manufacturer")

		b := &models.Battery{
			Designation:  normalize.String(r, "designation"),
			Manufacturer: n.dict.Manufacturers.Resolve(manufacturer),
			Serial:       normalize.String(r, "serial"),
			Chemistry:    normalize.String(r, "type"),
			Capacity:     int(normalize.CoerceNumericOrDefault(r["capacity"], 0)),
			Voltage:      int(normalize.CoerceNumericOrDefault(r["voltage"], 0)),
		}
		if b.Designation == "" {
			b.Designation = labelled(manufacturer)
		}
		if date, ok := normalize.ReformatDate(r["manufacturing_date"], normalize.DateOrderYDM); ok {
			b.Date = date
		}
		res.Assets = append(res.Assets, b)
	}
	return res, nil
}

func labelled(manufacturer string) string {
	return strings.TrimSpace(manufacturer + " " + biosLabel)
}
