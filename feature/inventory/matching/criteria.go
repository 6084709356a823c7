package matching

import (
	"inventory-manager/feature/inventory/models"
)

// ForComputer builds the criteria of an owning computer from its record and the
// ports reported with it.
func ForComputer(itemType string, knownID uint, c *models.Computer, ports []models.Asset) Criteria {
	crit := Criteria{
		ItemType: itemType,
		KnownID:  knownID,
		UUID:     c.UUID,
		Serial:   c.Serial,
		Name:     c.Name,
	}
	seenMAC := make(map[string]struct{})
	seenIP := make(map[string]struct{})
	for _, a := range ports {
		p, ok := a.(*models.NetworkPort)
		if !ok || p.Virtual {
			continue
		}
		if p.MAC != "" {
			if _, dup := seenMAC[p.MAC]; !dup {
				seenMAC[p.MAC] = struct{}{}
				crit.MACs = append(crit.MACs, p.MAC)
			}
		}
		for _, ip := range p.IPAddresses {
			if _, dup := seenIP[ip]; !dup {
				seenIP[ip] = struct{}{}
				crit.IPs = append(crit.IPs, ip)
			}
		}
	}
	return crit
}

// ForVirtualMachine builds the criteria of a guest materialized as a computer.
// Guests only match on UUID.
func ForVirtualMachine(c *models.Computer) Criteria {
	return Criteria{ItemType: models.ItemTypeComputer, UUID: c.UUID}
}

// ForLinked builds the criteria of a monitor, peripheral or printer.
func ForLinked(a models.Linked) Criteria {
	crit := Criteria{ItemType: a.LinkedItemType()}
	switch v := a.(type) {
	case *models.Monitor:
		crit.Serial, crit.Name = v.Serial, v.Name
	case *models.Peripheral:
		crit.Serial, crit.Name = v.Serial, v.Name
	case *models.Printer:
		crit.Serial, crit.Name = v.Serial, v.Name
	}
	return crit
}

// ItemFromLinked returns the standalone item record of a linked sub-item.
func ItemFromLinked(a models.Linked, entityID uint) *models.Item {
	item := &models.Item{ItemType: a.LinkedItemType(), EntityID: entityID}
	switch v := a.(type) {
	case *models.Monitor:
		item.Name, item.Serial, item.Manufacturer, item.Type = v.Name, v.Serial, v.Manufacturer, v.Type
	case *models.Peripheral:
		item.Name, item.Serial, item.Manufacturer, item.Type = v.Name, v.Serial, v.Manufacturer, v.Type
	case *models.Printer:
		item.Name, item.Serial, item.Manufacturer = v.Name, v.Serial, v.Manufacturer
	}
	return item
}
