package identity

import (
	"strconv"
	"strings"

	"inventory-manager/feature/inventory/models"
)

// Separator joins the parts of an identity key.
const Separator = "\x00"

// OperatingSystemKey is the key of the single operating system of an item.
const OperatingSystemKey = "os"

// Join lower-cases and trims every part and joins them with Separator.
func Join(parts ...string) string {
	lowered := make([]string, len(parts))
	for i, p := range parts {
		lowered[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(lowered, Separator)
}

// KeyFor derives the identity key of a canonical asset.
// It is pure and total: every asset yields a key, possibly built from empty parts.
func KeyFor(a models.Asset) string {
	switch v := a.(type) {
	case *models.NetworkPort:
		return PortKey(v.Name, v.MAC, v.WWN)
	case *models.IPAddress:
		return Join(v.Port, v.Address)
	case *models.NetworkCard:
		return Join(v.Designation, v.MAC)
	case *models.SoftwareInstall:
		return SoftwareKey(v)
	case *models.Monitor:
		return deviceKey(v.Serial, v.Name, v.Manufacturer)
	case *models.Peripheral:
		return deviceKey(v.Serial, v.Name, v.Manufacturer)
	case *models.Printer:
		return deviceKey(v.Serial, v.Name, v.Manufacturer)
	case *models.VirtualMachine:
		if v.UUID != "" {
			return Join("uuid", v.UUID)
		}
		return Join("name", v.Name)
	case *models.OperatingSystem:
		return OperatingSystemKey
	case *models.Firmware:
		return Join(v.Designation)
	case *models.Battery:
		if v.Serial != "" {
			return Join("serial", v.Serial)
		}
		return Join("name", v.Designation)
	case *models.Component:
		if v.Serial != "" {
			return Join(v.Kind, "serial", v.Serial)
		}
		return Join(v.Kind, "name", v.Designation)
	case *models.Computer:
		switch {
		case v.UUID != "":
			return Join("uuid", v.UUID)
		case v.Serial != "":
			return Join("serial", v.Serial)
		default:
			return Join("name", v.Name)
		}
	default:
		return ""
	}
}

// PortKey keys a port by name and MAC, falling back to MAC then WWN when unnamed.
func PortKey(name, mac, wwn string) string {
	switch {
	case strings.TrimSpace(name) != "":
		return Join(name, mac)
	case strings.TrimSpace(mac) != "":
		return Join(mac)
	default:
		return Join(wwn)
	}
}

// SoftwareKey keys an installation by name, version, manufacturer, entity and OS.
func SoftwareKey(s *models.SoftwareInstall) string {
	return Join(s.Name, s.Version, s.Manufacturer, strconv.FormatUint(uint64(s.EntityID), 10), s.OSRef)
}

// SoftwareBaseKey is SoftwareKey without the manufacturer.
func SoftwareBaseKey(s *models.SoftwareInstall) string {
	return Join(s.Name, s.Version, strconv.FormatUint(uint64(s.EntityID), 10), s.OSRef)
}

func deviceKey(serial, name, manufacturer string) string {
	if strings.TrimSpace(serial) != "" {
		return Join("serial", serial)
	}
	return Join("name", name, manufacturer)
}
