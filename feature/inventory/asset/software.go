package asset

import (
	"context"
	"regexp"

	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/identity"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/normalize"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SoftwareNormalizer normalizes the softwares section.
//
// Installations are deduplicated on the full software key. Entries without a
// manufacturer are kept only when no manufactured entry shares their name,
// version, entity and OS.
type SoftwareNormalizer struct {
	dict *dictionary.Dictionary
}

func NewSoftwareNormalizer(dict *dictionary.Dictionary) *SoftwareNormalizer {
	return &SoftwareNormalizer{dict: dict}
}

func (n *SoftwareNormalizer) Name() string { return "software" }

func (n *SoftwareNormalizer) Sections() []string { return []string{"softwares"} }

func (n *SoftwareNormalizer) Categories() []models.Category {
	return []models.Category{models.CategorySoftware}
}

func (n *SoftwareNormalizer) Normalize(_ context.Context, rc *RunContext, content document.Content) (*Result, error) {
	osRef := stringField(content.Object("operatingsystem"), "name")

	kept := newKeyedList()
	baseKeys := make(map[string]struct{})
	var unmanufactured []*models.SoftwareInstall

	for _, entry := range content.List("softwares") {
		var raw rawSoftware
		decode(entry, &raw)
		if raw.Name == "" {
			continue
		}

		manufacturer := n.dict.Manufacturers.Resolve(firstOf(raw.Publisher, raw.Manufacturer))
		outcome, matched := n.dict.Software.Apply(raw.Name, manufacturer, raw.Version)
		if matched && outcome.Ignore {
			continue
		}

		sw := &models.SoftwareInstall{
			Name:         outcome.Name,
			Version:      outcome.Version,
			Manufacturer: n.dict.Manufacturers.Resolve(outcome.Manufacturer),
			EntityID:     rc.EntityID,
			OSRef:        osRef,
			Arch:         n.dict.Architectures.Resolve(raw.Arch),
			InstallDate:  softwareDate(raw.InstallDate),
			Comment:      raw.Comments,
			GUID:         raw.GUID,
			System:       raw.System,
		}

		if sw.Manufacturer == "" {
			unmanufactured = append(unmanufactured, sw)
			continue
		}
		kept.add(identity.SoftwareKey(sw), sw)
		baseKeys[identity.SoftwareBaseKey(sw)] = struct{}{}
	}

	for _, sw := range unmanufactured {
		if _, shadowed := baseKeys[identity.SoftwareBaseKey(sw)]; shadowed {
			continue
		}
		kept.add(identity.SoftwareKey(sw), sw)
	}

	return &Result{Assets: kept.assets()}, nil
}

// softwareDate accepts ISO dates as they are and reformats DD/MM/YYYY ones.
func softwareDate(raw string) string {
	if isoDatePattern.MatchString(raw) {
		return raw
	}
	if date, ok := normalize.ReformatDate(raw, normalize.DateOrderYMD); ok {
		return date
	}
	return ""
}

// keyedList keeps assets in first-seen order, merging those sharing a key.
type keyedList struct {
	index map[string]int
	items []models.Asset
}

func newKeyedList() *keyedList {
	return &keyedList{index: make(map[string]int)}
}

func (l *keyedList) add(key string, a models.Asset) {
	if i, ok := l.index[key]; ok {
		l.items[i] = models.Merge(l.items[i], a)
		return
	}
	l.index[key] = len(l.items)
	l.items = append(l.items, a)
}

func (l *keyedList) assets() []models.Asset {
	return l.items
}
