package asset

import (
	"context"
	"strings"

	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"

	"go.uber.org/zap"
)

const (
	sectionUSBDevices = "usbdevices"
	sectionInputs     = "inputs"
)

// pointingTypes names the pointing device codes 3 to 9.
var pointingTypes = map[int]string{
	3: "Mouse",
	4: "Track Ball",
	5: "Track Point",
	6: "Glide Point",
	7: "Touch Pad",
	8: "Touch Screen",
	9: "Mouse - Optical Sensor",
}

// MonitorNormalizer normalizes the monitors section.
type MonitorNormalizer struct {
	dict *dictionary.Dictionary
}

func NewMonitorNormalizer(dict *dictionary.Dictionary) *MonitorNormalizer {
	return &MonitorNormalizer{dict: dict}
}

func (n *MonitorNormalizer) Name() string { return "monitor" }

func (n *MonitorNormalizer) Sections() []string { return []string{"monitors"} }

func (n *MonitorNormalizer) Categories() []models.Category {
	return []models.Category{models.CategoryMonitor}
}

func (n *MonitorNormalizer) Normalize(_ context.Context, _ *RunContext, content document.Content) (*Result, error) {
	res := &Result{}
	for _, entry := range content.List("monitors") {
		var raw rawMonitor
		decode(entry, &raw)
		m := &models.Monitor{
			Name:         firstOf(raw.Name, raw.Caption),
			Manufacturer: n.dict.Manufacturers.Resolve(raw.Manufacturer),
			Serial:       firstOf(raw.Serial, raw.AltSerial),
			Description:  raw.Description,
			Type:         raw.Type,
		}
		if m.Name == "" && m.Serial == "" {
			continue
		}
		res.Assets = append(res.Assets, m)
	}
	return res, nil
}

// PeripheralNormalizer normalizes usbdevices and inputs. Inputs reported under the
// name of a USB device complete that device instead of adding a new one.
type PeripheralNormalizer struct {
	dict *dictionary.Dictionary
}

func NewPeripheralNormalizer(dict *dictionary.Dictionary) *PeripheralNormalizer {
	return &PeripheralNormalizer{dict: dict}
}

func (n *PeripheralNormalizer) Name() string { return "peripheral" }

func (n *PeripheralNormalizer) Sections() []string { return []string{sectionUSBDevices, sectionInputs} }

func (n *PeripheralNormalizer) Categories() []models.Category {
	return []models.Category{models.CategoryPeripheral}
}

func (n *PeripheralNormalizer) Normalize(ctx context.Context, rc *RunContext, content document.Content) (*Result, error) {
	if err := requireComputer(rc, n.Name()); err != nil {
		return nil, err
	}

	var peripherals []*models.Peripheral
	for _, entry := range content.List(sectionUSBDevices) {
		var raw rawUSBDevice
		decode(entry, &raw)
		p := &models.Peripheral{
			Name:         raw.Name,
			Manufacturer: raw.Manufacturer,
			Serial:       raw.Serial,
			VendorID:     strings.ToLower(raw.VendorID),
			ProductID:    strings.ToLower(raw.ProductID),
			Caption:      raw.Caption,
			Source:       sectionUSBDevices,
		}
		if p.VendorID != "" {
			if vendor, product, ok := n.dict.USB.Lookup(ctx, p.VendorID, p.ProductID); ok {
				fill(&p.Manufacturer, vendor)
				fill(&p.Name, product)
			}
		}
		fill(&p.Name, p.Caption)
		if p.Name == "" && p.Serial == "" {
			continue
		}
		p.Manufacturer = n.dict.Manufacturers.Resolve(p.Manufacturer)
		peripherals = append(peripherals, p)
	}

	for _, entry := range content.List(sectionInputs) {
		var raw rawInput
		decode(entry, &raw)
		name := firstOf(raw.Name, raw.Caption)
		if name == "" {
			continue
		}
		kind := inputType(raw)

		var existing *models.Peripheral
		for _, p := range peripherals {
			if strings.EqualFold(p.Name, name) {
				existing = p
				break
			}
		}
		if existing != nil {
			fill(&existing.Type, kind)
			continue
		}
		peripherals = append(peripherals, &models.Peripheral{
			Name:         name,
			Manufacturer: n.dict.Manufacturers.Resolve(raw.Manufacturer),
			Caption:      raw.Caption,
			Type:         kind,
			Source:       sectionInputs,
		})
	}

	res := &Result{}
	for _, p := range peripherals {
		res.Assets = append(res.Assets, p)
	}
	return res, nil
}

// Scope limits reconciliation to the peripherals of the sections present. Records
// stored without a source came from usbdevices.
func (n *PeripheralNormalizer) Scope(content document.Content) func(models.Asset) bool {
	usb, inputs := content.Has(sectionUSBDevices), content.Has(sectionInputs)
	return func(a models.Asset) bool {
		p, ok := a.(*models.Peripheral)
		if !ok {
			return false
		}
		if p.Source == sectionInputs {
			return inputs
		}
		return usb
	}
}

func inputType(raw rawInput) string {
	if name, ok := pointingTypes[raw.PointingType]; ok {
		return name
	}
	if raw.Layout != "" {
		return "Keyboard"
	}
	return raw.Type
}

// PrinterNormalizer normalizes the printers section through the printer dictionary.
type PrinterNormalizer struct {
	dict *dictionary.Dictionary
}

func NewPrinterNormalizer(dict *dictionary.Dictionary) *PrinterNormalizer {
	return &PrinterNormalizer{dict: dict}
}

func (n *PrinterNormalizer) Name() string { return "printer" }

func (n *PrinterNormalizer) Sections() []string { return []string{"printers"} }

func (n *PrinterNormalizer) Categories() []models.Category {
	return []models.Category{models.CategoryPrinter}
}

func (n *PrinterNormalizer) Normalize(_ context.Context, rc *RunContext, content document.Content) (*Result, error) {
	res := &Result{}
	for _, entry := range content.List("printers") {
		var raw rawPrinter
		decode(entry, &raw)
		if raw.Name == "" {
			continue
		}

		outcome, matched := n.dict.Printers.Apply(raw.Name, raw.Manufacturer, "")
		if matched && outcome.Ignore {
			rc.Log().Debug("printer ignored by dictionary", zap.String("printer", raw.Name))
			continue
		}

		res.Assets = append(res.Assets, &models.Printer{
			Name:         outcome.Name,
			Manufacturer: n.dict.Manufacturers.Resolve(outcome.Manufacturer),
			Serial:       strings.TrimSuffix(raw.Serial, "/"),
			Driver:       raw.Driver,
			Port:         raw.Port,
			HaveUSB:      strings.Contains(raw.Port, "USB"),
			Network:      raw.Network,
		})
	}
	return res, nil
}
