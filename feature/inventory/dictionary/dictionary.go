package dictionary

import (
	"fmt"

	"inventory-manager/core/storage"
)

const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceObject   = "object"
)

// Options selects where the dictionaries come from.
type Options struct {
	// Source is one of embedded, file or object.
	Source string
	// USBIDs and PCIIDs are file paths or object names depending on Source.
	USBIDs string
	PCIIDs string
	// RulesPath is an optional rules file.
	RulesPath string

	Client storage.Client
	Bucket string
}

// Dictionary bundles the lookup services used by the asset normalizers.
// Each lookup maps a raw value to a resolved value, or returns it unchanged.
type Dictionary struct {
	Manufacturers *Manufacturers
	Architectures Architectures
	USB           *LazyIDTable
	PCI           *LazyIDTable
	Software      *RuleSet
	Printers      *RuleSet
}

// New builds a dictionary. Id tables are only read on first lookup.
func New(opts Options) (*Dictionary, error) {
	var usb, pci Source
	switch opts.Source {
	case SourceEmbedded, "":
		usb, pci = EmbeddedUSB(), EmbeddedPCI()
	case SourceFile:
		usb, pci = FileSource{Path: opts.USBIDs}, FileSource{Path: opts.PCIIDs}
	case SourceObject:
		if opts.Client == nil {
			return nil, fmt.Errorf("object dictionary source requires a storage client")
		}
		usb = ObjectSource{Client: opts.Client, Bucket: opts.Bucket, Object: opts.USBIDs}
		pci = ObjectSource{Client: opts.Client, Bucket: opts.Bucket, Object: opts.PCIIDs}
	default:
		return nil, fmt.Errorf("unknown dictionary source %q", opts.Source)
	}

	rules := &RulesFile{}
	if opts.RulesPath != "" {
		loaded, err := LoadRulesFile(opts.RulesPath)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}

	software, err := NewRuleSet(rules.Software)
	if err != nil {
		return nil, fmt.Errorf("software rules: %w", err)
	}
	printers, err := NewRuleSet(rules.Printers)
	if err != nil {
		return nil, fmt.Errorf("printer rules: %w", err)
	}

	return &Dictionary{
		Manufacturers: NewManufacturers(rules.Manufacturers),
		USB:           NewLazyIDTable(usb),
		PCI:           NewLazyIDTable(pci),
		Software:      software,
		Printers:      printers,
	}, nil
}

// Default returns a dictionary on the embedded tables without rules.
func Default() *Dictionary {
	d, _ := New(Options{Source: SourceEmbedded})
	return d
}
