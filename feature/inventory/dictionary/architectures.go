package dictionary

import "strings"

var architectureAliases = map[string]string{
	"x86_64":  "x86_64",
	"amd64":   "x86_64",
	"x64":     "x86_64",
	"64-bit":  "x86_64",
	"64 bits": "x86_64",
	"i386":    "i386",
	"i486":    "i386",
	"i586":    "i386",
	"i686":    "i386",
	"x86":     "i386",
	"32-bit":  "i386",
	"32 bits": "i386",
	"aarch64": "arm64",
	"arm64":   "arm64",
	"armv7l":  "arm",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
}

// Architectures normalizes OS architecture names.
type Architectures struct{}

// Resolve returns the canonical architecture, or the trimmed input when unknown.
// The "0" sentinel some agents send resolves to "".
func (Architectures) Resolve(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "0" {
		return ""
	}
	if canonical, ok := architectureAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}
