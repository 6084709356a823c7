package asset

import (
	"context"
	"strconv"
	"strings"

	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"
)

// VirtualMachineNormalizer normalizes guests hosted by the owning computer.
type VirtualMachineNormalizer struct{}

func NewVirtualMachineNormalizer() *VirtualMachineNormalizer {
	return &VirtualMachineNormalizer{}
}

func (n *VirtualMachineNormalizer) Name() string { return "virtualmachine" }

func (n *VirtualMachineNormalizer) Sections() []string { return []string{"virtualmachines"} }

func (n *VirtualMachineNormalizer) Categories() []models.Category {
	return []models.Category{models.CategoryVM}
}

func (n *VirtualMachineNormalizer) Normalize(_ context.Context, rc *RunContext, content document.Content) (*Result, error) {
	if err := requireComputer(rc, n.Name()); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, entry := range content.List("virtualmachines") {
		var raw rawVirtualMachine
		decode(entry, &raw)
		if raw.Name == "" && raw.UUID == "" {
			continue
		}

		vm := &models.VirtualMachine{
			Name:      raw.Name,
			UUID:      raw.UUID,
			Memory:    MemoryMB(raw.Memory),
			VCPU:      raw.VCPU,
			Status:    raw.Status,
			Subsystem: raw.Subsystem,
			VMType:    raw.VMType,
			Comment:   raw.Comment,
			MAC:       strings.ToLower(raw.MAC),
		}
		res.Assets = append(res.Assets, vm)

		if rc.Options.CreateVMComputers && vm.UUID != "" {
			res.VMComputers = append(res.VMComputers, &models.Computer{
				Name:        vm.Name,
				UUID:        vm.UUID,
				Type:        firstOf(vm.VMType, vm.Subsystem),
				IsVirtual:   true,
				Description: vm.Comment,
			})
		}
	}
	return res, nil
}

// MemoryMB converts an agent memory string to megabytes. Unit suffixes are
// case-insensitive. GB values are multiplied by 1000 while KB and B values are
// divided; values without a unit are megabytes.
func MemoryMB(raw string) int {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))

	scale := func(v float64) float64 { return v }
	switch {
	case strings.HasSuffix(s, "MB"):
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "GB"):
		s = strings.TrimSuffix(s, "GB")
		scale = func(v float64) float64 { return v * 1000 }
	case strings.HasSuffix(s, "KB"):
		s = strings.TrimSuffix(s, "KB")
		scale = func(v float64) float64 { return v / 1000 }
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
		scale = func(v float64) float64 { return v / 1000000 }
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(scale(v))
}
