package document

import "strings"

// Metadata identifies the reporting device and agent.
type Metadata struct {
	DeviceID        string
	ItemType        string
	Tag             string
	VersionClient   string
	ProviderName    string
	ProviderVersion string
}

// AgentVersion returns the best known version of the reporting agent.
func (m Metadata) AgentVersion() string {
	if m.ProviderVersion != "" {
		return m.ProviderVersion
	}
	return m.VersionClient
}

// ExtractMetadata pulls the device identifier and agent version from a document.
// Both are required.
func ExtractMetadata(doc *Document) (Metadata, error) {
	meta := Metadata{
		DeviceID: strings.TrimSpace(doc.DeviceID),
		ItemType: doc.ItemType,
		Tag:      doc.Tag,
	}
	if meta.DeviceID == "" {
		return meta, &MetadataError{Field: "deviceid"}
	}

	meta.VersionClient, _ = doc.Content["versionclient"].(string)
	if provider := doc.Content.Object("versionprovider"); provider != nil {
		meta.ProviderName, _ = provider["name"].(string)
		meta.ProviderVersion, _ = provider["version"].(string)
	}
	if meta.AgentVersion() == "" {
		return meta, &MetadataError{Field: "versionclient"}
	}
	return meta, nil
}
