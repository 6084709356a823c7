package asset

import (
	"context"
	"strings"

	"inventory-manager/feature/inventory/dictionary"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/identity"
	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/normalize"

	"go.uber.org/zap"
)

const (
	InstantiationEthernet     = "Ethernet"
	InstantiationWifi         = "Wifi"
	InstantiationFiberchannel = "Fiberchannel"
	InstantiationLocal        = "Local"
)

// NetworkNormalizer builds network cards, ports and IP addresses from the networks
// section. Cards are only emitted for interfaces owned by a reported controller.
type NetworkNormalizer struct {
	dict *dictionary.Dictionary
}

func NewNetworkNormalizer(dict *dictionary.Dictionary) *NetworkNormalizer {
	return &NetworkNormalizer{dict: dict}
}

func (n *NetworkNormalizer) Name() string { return "network" }

func (n *NetworkNormalizer) Sections() []string { return []string{"networks"} }

func (n *NetworkNormalizer) Categories() []models.Category {
	return []models.Category{models.CategoryNetworkCard, models.CategoryNetworkPort, models.CategoryIPAddress}
}

func (n *NetworkNormalizer) Normalize(ctx context.Context, rc *RunContext, content document.Content) (*Result, error) {
	controllers := make([]rawController, 0)
	for _, entry := range content.List("controllers") {
		var c rawController
		decode(entry, &c)
		controllers = append(controllers, c)
	}
	claimed := make([]bool, len(controllers))

	res := &Result{}
	ports := make(map[string]*models.NetworkPort)
	var order []string

	for _, entry := range content.List("networks") {
		var raw rawNetwork
		decode(entry, &raw)
		r := normalize.Record(entry)
		mac := strings.ToLower(raw.MACAddr)

		if raw.Description != "" {
			if i := claimController(controllers, claimed, raw.Description); i >= 0 {
				res.Assets = append(res.Assets, n.card(ctx, rc, raw, mac, controllers[i]))
			}
		}

		port := &models.NetworkPort{
			Name:        raw.Description,
			MAC:         mac,
			WWN:         strings.ToLower(raw.WWN),
			Type:        raw.Type,
			Status:      raw.Status,
			MTU:         raw.MTU,
			Description: raw.Description,
			Speed:       normalize.NormalizeSpeed(r["speed"]),
			IPAddresses: addresses(r),
		}
		if port.Name == "" && port.MAC == "" && port.WWN == "" {
			continue
		}
		port.InstantiationType = instantiationType(raw.Type, port.MAC, port.WWN)
		port.Virtual = normalize.Bool(r, "virtualdev")
		setLogicalNumber(port)

		key := identity.KeyFor(port)
		if prev, ok := ports[key]; ok {
			merged := models.Merge(prev, port).(*models.NetworkPort)
			setLogicalNumber(merged)
			ports[key] = merged
			continue
		}
		ports[key] = port
		order = append(order, key)
	}

	for _, key := range order {
		port := ports[key]
		res.derive(port)
		for _, addr := range port.IPAddresses {
			res.derive(&models.IPAddress{Port: key, Address: addr, Version: ipVersion(addr)})
		}
	}
	return res, nil
}

func (n *NetworkNormalizer) card(ctx context.Context, rc *RunContext, raw rawNetwork, mac string, ctrl rawController) *models.NetworkCard {
	card := &models.NetworkCard{
		Designation: raw.Description,
		MAC:         mac,
		PCIID:       firstOf(raw.PCIID, ctrl.PCIID),
		Controller:  firstOf(ctrl.Name, ctrl.Type),
	}
	manufacturer := ctrl.Manufacturer
	vendorID, productID := splitPCIID(card.PCIID)
	if vendorID == "" {
		vendorID, productID = ctrl.VendorID, ctrl.ProductID
	}
	if vendorID != "" {
		if vendor, _, ok := n.dict.PCI.Lookup(ctx, vendorID, productID); ok && vendor != "" {
			manufacturer = vendor
		} else if !ok {
			rc.Log().Debug("pci id not found", zap.String("pciid", vendorID+":"+productID))
		}
	}
	card.Manufacturer = n.dict.Manufacturers.Resolve(manufacturer)
	return card
}

// claimController returns the index of the first unclaimed controller whose name or
// type is the description, or the description followed by " controller".
func claimController(controllers []rawController, claimed []bool, description string) int {
	want := []string{description, description + " controller"}
	for i, c := range controllers {
		if claimed[i] {
			continue
		}
		for _, w := range want {
			if strings.EqualFold(c.Name, w) || strings.EqualFold(c.Type, w) {
				claimed[i] = true
				return i
			}
		}
	}
	return -1
}

// setLogicalNumber derives the logical number from the virtual flag: virtual
// devices are 0, every other port is 1.
func setLogicalNumber(port *models.NetworkPort) {
	if port.Virtual {
		port.LogicalNumber = 0
		return
	}
	port.LogicalNumber = 1
}

func instantiationType(rawType, mac, wwn string) string {
	switch strings.ToLower(rawType) {
	case "ethernet":
		return InstantiationEthernet
	case "wifi":
		return InstantiationWifi
	case "fibrechannel", "fiberchannel":
		return InstantiationFiberchannel
	}
	switch {
	case wwn != "":
		return InstantiationFiberchannel
	case mac != "":
		return InstantiationEthernet
	default:
		return InstantiationLocal
	}
}

// addresses collects the v4 and v6 addresses of a raw interface, deduplicated.
func addresses(r normalize.Record) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, key := range []string{"ipaddress", "ipaddress6"} {
		var values []any
		switch v := r[key].(type) {
		case []any:
			values = v
		case nil:
		default:
			values = []any{v}
		}
		for _, v := range values {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func ipVersion(addr string) int {
	if strings.Contains(addr, ":") {
		return 6
	}
	return 4
}

func splitPCIID(pciid string) (vendor, product string) {
	parts := strings.SplitN(pciid, ":", 3)
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
