package asset

import (
	"context"
	"strings"

	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"
)

const (
	vmSystemPhysical = "Physical"
	vmSystemBSDJail  = "BSDJail"
	accountTagKey    = "TAG"
)

// ComputerNormalizer builds the owning item record from hardware, bios and accountinfo.
type ComputerNormalizer struct {
	dict *dictionary.Dictionary
}

func NewComputerNormalizer(dict *dictionary.Dictionary) *ComputerNormalizer {
	return &ComputerNormalizer{dict: dict}
}

func (n *ComputerNormalizer) Name() string { return "computer" }

func (n *ComputerNormalizer) Sections() []string {
	return []string{"hardware", "bios", "accountinfo"}
}

func (n *ComputerNormalizer) Categories() []models.Category { return nil }

func (n *ComputerNormalizer) Normalize(_ context.Context, _ *RunContext, content document.Content) (*Result, error) {
	var hw rawHardware
	var bios rawBios
	decode(content.Object("hardware"), &hw)
	decode(content.Object("bios"), &bios)

	c := &models.Computer{
		Name:        hw.Name,
		UUID:        hw.UUID,
		Contact:     hw.LastLoggedUser,
		Domain:      hw.Workgroup,
		Description: hw.Description,
		Model:       firstOf(bios.SModel, bios.MModel),
	}

	manufacturer := firstOf(bios.SManufacturer, bios.MManufacturer, bios.BManufacturer)
	c.Serial = hpSerial(manufacturer, bios.SSN)
	c.Manufacturer = n.dict.Manufacturers.Resolve(manufacturer)

	if hw.VMSystem != "" && hw.VMSystem != vmSystemPhysical {
		c.Type = hw.VMSystem
		c.IsVirtual = true
	} else {
		c.Type = firstOf(hw.ChassisType, bios.Type, bios.MModel, hw.VMSystem)
	}

	if hw.VMSystem == vmSystemBSDJail {
		c.Serial = ""
		c.UUID = hw.UUID + "-" + hw.Name
	}

	c.OtherSerial = bios.AssetTag
	if c.OtherSerial == "" {
		for _, entry := range content.List("accountinfo") {
			if stringField(entry, "keyname") == accountTagKey {
				c.OtherSerial = stringField(entry, "keyvalue")
				break
			}
		}
	}

	return &Result{Owner: c}, nil
}

// hpSerial strips the leading "S" some Hewlett-Packard BIOSes prepend to serials.
func hpSerial(manufacturer, serial string) string {
	serial = strings.TrimSpace(serial)
	if strings.Contains(manufacturer, "ewlett") && (strings.HasPrefix(serial, "s") || strings.HasPrefix(serial, "S")) {
		return serial[1:]
	}
	return serial
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
