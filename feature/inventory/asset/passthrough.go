package asset

import (
	"context"

	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/models"

	"go.uber.org/zap"
)

// InformationalSections are accepted but not stored.
var InformationalSections = []string{
	"versionclient",
	"versionprovider",
	"accesslog",
	"antivirus",
	"cameras",
	"databases_services",
	"envs",
	"licenseinfos",
	"local_groups",
	"local_users",
	"logical_volumes",
	"physical_volumes",
	"ports",
	"processes",
	"remote_mgmt",
	"sensors",
	"slots",
	"users",
	"volume_groups",
}

// PassthroughNormalizer claims informational sections and logs their sizes.
type PassthroughNormalizer struct{}

func NewPassthroughNormalizer() *PassthroughNormalizer {
	return &PassthroughNormalizer{}
}

func (n *PassthroughNormalizer) Name() string { return "passthrough" }

func (n *PassthroughNormalizer) Sections() []string { return InformationalSections }

func (n *PassthroughNormalizer) Categories() []models.Category { return nil }

func (n *PassthroughNormalizer) Normalize(_ context.Context, rc *RunContext, content document.Content) (*Result, error) {
	for _, section := range InformationalSections {
		if entries := content.List(section); len(entries) > 0 {
			rc.Log().Debug("informational section skipped", zap.String("section", section), zap.Int("entries", len(entries)))
		}
	}
	return &Result{}, nil
}
