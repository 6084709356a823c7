package asset

import (
	"context"

	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/normalize"
)

// componentKind maps a hardware section to the fields of a component record.
type componentKind struct {
	section      string
	kind         string
	designation  []string
	manufacturer []string
	serial       []string
	model        []string
	capacity     []string
	frequency    []string
	iface        []string
}

var componentKinds = []componentKind{
	{section: "cpus", kind: "processor", designation: []string{"name"}, manufacturer: []string{"manufacturer"}, serial: []string{"serial"}, model: []string{"model", "familyname"}, capacity: []string{"core"}, frequency: []string{"speed"}},
	{section: "memories", kind: "memory", designation: []string{"caption", "description"}, manufacturer: []string{"manufacturer"}, serial: []string{"serialnumber"}, model: []string{"model"}, capacity: []string{"capacity"}, frequency: []string{"speed"}, iface: []string{"type"}},
	{section: "storages", kind: "harddrive", designation: []string{"name", "model"}, manufacturer: []string{"manufacturer"}, serial: []string{"serialnumber", "serial"}, model: []string{"model"}, capacity: []string{"disksize"}, iface: []string{"interface"}},
	{section: "drives", kind: "drive", designation: []string{"volumn", "letter", "label"}, serial: []string{"serial"}, model: []string{"filesystem"}, capacity: []string{"total"}, iface: []string{"type"}},
	{section: "sounds", kind: "soundcard", designation: []string{"name"}, manufacturer: []string{"manufacturer"}, model: []string{"caption"}},
	{section: "videos", kind: "graphiccard", designation: []string{"name"}, model: []string{"chipset"}, capacity: []string{"memory"}, iface: []string{"resolution"}},
	{section: "controllers", kind: "controller", designation: []string{"name"}, manufacturer: []string{"manufacturer"}, model: []string{"caption"}, iface: []string{"type"}},
	{section: "simcards", kind: "simcard", designation: []string{"operator_name", "subscriber_id"}, manufacturer: []string{"operator_name"}, serial: []string{"iccid"}, model: []string{"line_number"}},
	{section: "powersupplies", kind: "powersupply", designation: []string{"name", "partnum"}, manufacturer: []string{"manufacturer"}, serial: []string{"serialnumber"}, model: []string{"partnum"}, capacity: []string{"power_max"}},
	{section: "firmwares", kind: "firmware", designation: []string{"name"}, manufacturer: []string{"manufacturer"}, model: []string{"version"}, iface: []string{"type"}},
}

// ComponentNormalizer maps generic hardware sections to component records.
type ComponentNormalizer struct {
	dict *dictionary.Dictionary
}

func NewComponentNormalizer(dict *dictionary.Dictionary) *ComponentNormalizer {
	return &ComponentNormalizer{dict: dict}
}

func (n *ComponentNormalizer) Name() string { return "component" }

func (n *ComponentNormalizer) Sections() []string {
	sections := make([]string, 0, len(componentKinds))
	for _, k := range componentKinds {
		sections = append(sections, k.section)
	}
	return sections
}

func (n *ComponentNormalizer) Categories() []models.Category {
	return []models.Category{models.CategoryComponent}
}

func (n *ComponentNormalizer) Normalize(_ context.Context, _ *RunContext, content document.Content) (*Result, error) {
	res := &Result{}
	for _, k := range componentKinds {
		for _, entry := range content.List(k.section) {
			r := normalize.Record(entry)
			c := &models.Component{
				Kind:         k.kind,
				Designation:  normalize.FirstNonEmpty(r, k.designation...),
				Manufacturer: n.dict.Manufacturers.Resolve(normalize.FirstNonEmpty(r, k.manufacturer...)),
				Serial:       normalize.FirstNonEmpty(r, k.serial...),
				Model:        normalize.FirstNonEmpty(r, k.model...),
				Capacity:     firstInt(r, k.capacity),
				Frequency:    firstInt(r, k.frequency),
				Interface:    normalize.FirstNonEmpty(r, k.iface...),
				Description:  normalize.String(r, "description"),
			}
			if c.Designation == "" && c.Serial == "" {
				continue
			}
			res.Assets = append(res.Assets, c)
		}
	}
	return res, nil
}

// Scope limits reconciliation to the component kinds whose sections are present.
func (n *ComponentNormalizer) Scope(content document.Content) func(models.Asset) bool {
	kinds := make(map[string]bool)
	for _, k := range componentKinds {
		if content.Has(k.section) {
			kinds[k.kind] = true
		}
	}
	return func(a models.Asset) bool {
		c, ok := a.(*models.Component)
		return ok && kinds[c.Kind]
	}
}

func firstInt(r normalize.Record, keys []string) int {
	for _, key := range keys {
		if _, ok := r[key]; ok {
			return normalize.Int(r, key, 0)
		}
	}
	return 0
}
