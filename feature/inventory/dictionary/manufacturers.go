package dictionary

import "strings"

// manufacturerAliases maps lower-cased agent spellings to a canonical name.
var manufacturerAliases = map[string]string{
	"dell":                            "Dell Inc.",
	"dell inc":                        "Dell Inc.",
	"dell inc.":                       "Dell Inc.",
	"dell computer corporation":       "Dell Inc.",
	"hp":                              "Hewlett-Packard",
	"hewlett packard":                 "Hewlett-Packard",
	"hewlett-packard":                 "Hewlett-Packard",
	"hewlett-packard company":         "Hewlett-Packard",
	"lenovo":                          "LENOVO",
	"ibm":                             "IBM",
	"microsoft":                       "Microsoft Corporation",
	"microsoft corporation":           "Microsoft Corporation",
	"intel":                           "Intel Corporation",
	"intel corporation":               "Intel Corporation",
	"intel corp.":                     "Intel Corporation",
	"vmware":                          "VMware, Inc.",
	"vmware, inc.":                    "VMware, Inc.",
	"innotek gmbh":                    "innotek GmbH",
	"apple":                           "Apple Inc.",
	"apple inc.":                      "Apple Inc.",
	"apple computer, inc.":            "Apple Inc.",
	"asustek computer inc.":           "ASUSTeK Computer Inc.",
	"asustek computer inc":            "ASUSTeK Computer Inc.",
	"oracle corporation":              "Oracle Corporation",
	"qemu":                            "QEMU",
	"realtek semiconductor co., ltd.": "Realtek Semiconductor Co., Ltd.",
}

// Manufacturers resolves manufacturer spellings to canonical names.
type Manufacturers struct {
	aliases map[string]string
}

// NewManufacturers returns the built-in table extended with extra aliases.
func NewManufacturers(extra map[string]string) *Manufacturers {
	aliases := make(map[string]string, len(manufacturerAliases)+len(extra))
	for k, v := range manufacturerAliases {
		aliases[k] = v
	}
	for k, v := range extra {
		aliases[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Manufacturers{aliases: aliases}
}

// Resolve returns the canonical name, or the trimmed input when unknown.
func (m *Manufacturers) Resolve(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := m.aliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}
