package asset

import (
	"context"
	"regexp"
	"strings"

	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/normalize"
)

var (
	// Microsoft Windows 10 Professionnel
	windowsPattern = regexp.MustCompile(`(?i)^(?:microsoft\s+)?(windows)\s+(xp|vista|\d+(?:\.\d+)?)\s*(.*)$`)
	// Windows Server 2003 Standard Edition
	editionPattern = regexp.MustCompile(`(?i)^(.+?)\s+(\S+\s+edition)$`)
	// Debian GNU/Linux 12 (bookworm)
	debianPattern = regexp.MustCompile(`^(.+?)\s+GNU/Linux\s+(\d+(?:\.\d+)*)\s+\((\w+)\)$`)
	// Fedora 39 (x86_64)
	distroArchPattern = regexp.MustCompile(`^(.+?)\s+(\d+(?:\.\d+)*)\s+\((.+)\)$`)
)

// OperatingSystemNormalizer normalizes the operatingsystem section. License and
// registration fields are read from hardware.
type OperatingSystemNormalizer struct {
	dict *dictionary.Dictionary
}

func NewOperatingSystemNormalizer(dict *dictionary.Dictionary) *OperatingSystemNormalizer {
	return &OperatingSystemNormalizer{dict: dict}
}

func (n *OperatingSystemNormalizer) Name() string { return "operatingsystem" }

func (n *OperatingSystemNormalizer) Sections() []string { return []string{"operatingsystem"} }

func (n *OperatingSystemNormalizer) Categories() []models.Category {
	return []models.Category{models.CategoryOS}
}

func (n *OperatingSystemNormalizer) Normalize(_ context.Context, rc *RunContext, content document.Content) (*Result, error) {
	if err := requireComputer(rc, n.Name()); err != nil {
		return nil, err
	}

	var raw rawOperatingSystem
	var hw rawHardware
	decode(content.Object("operatingsystem"), &raw)
	decode(content.Object("hardware"), &hw)

	os := &models.OperatingSystem{
		Name:          raw.Name,
		FullName:      raw.FullName,
		Version:       raw.Version,
		ServicePack:   normalize.ZeroToEmpty(raw.ServicePack),
		Arch:          normalize.ZeroToEmpty(raw.Arch),
		KernelName:    raw.KernelName,
		KernelVersion: raw.KernelVersion,
		HostID:        raw.HostID,
		LicenseNumber: hw.WinProdKey,
		LicenseID:     hw.WinProdID,
		Owner:         hw.WinOwner,
		Company:       hw.WinCompany,
	}

	if rc.Options.ParseOSFullName {
		parseFullName(os)
	}
	os.Arch = n.dict.Architectures.Resolve(os.Arch)

	if date, ok := normalize.ReformatDate(raw.InstallDate, normalize.DateOrderYDM); ok {
		os.InstallDate = date
	}

	return &Result{Assets: []models.Asset{os}}, nil
}

// parseFullName fills empty OS fields from the full name. The first matching
// pattern family wins.
func parseFullName(os *models.OperatingSystem) {
	full := strings.TrimSpace(os.FullName)
	if full == "" {
		full = strings.TrimSpace(os.Name)
	}
	if full == "" {
		return
	}

	if m := windowsPattern.FindStringSubmatch(full); m != nil {
		fill(&os.Name, "Windows")
		fill(&os.Version, m[2])
		fill(&os.Edition, strings.TrimSpace(m[3]))
		return
	}
	if m := editionPattern.FindStringSubmatch(full); m != nil {
		fill(&os.Name, m[1])
		fill(&os.Edition, m[2])
		return
	}
	if m := debianPattern.FindStringSubmatch(full); m != nil {
		fill(&os.Name, m[1])
		fill(&os.Version, m[2]+" ("+m[3]+")")
		return
	}
	if m := distroArchPattern.FindStringSubmatch(full); m != nil {
		fill(&os.Name, m[1])
		fill(&os.Version, m[2])
		fill(&os.Arch, m[3])
	}
}

func fill(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
