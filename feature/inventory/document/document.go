package document

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DefaultItemType is the owning item type when a document does not name one.
const DefaultItemType = "Computer"

// Section is one raw, agent-supplied section of the content tree.
// Object sections decode to map[string]any and list sections to []any.
type Section = any

// Content maps section names to their raw values.
type Content map[string]Section

// Document is a parsed inventory submission.
type Document struct {
	DeviceID string  `json:"deviceid"`
	Action   string  `json:"action,omitempty"`
	ItemType string  `json:"itemtype,omitempty"`
	Partial  bool    `json:"partial,omitempty"`
	Tag      string  `json:"tag,omitempty"`
	Content  Content `json:"content"`

	// Raw holds the submitted bytes for the audit archive.
	Raw []byte `json:"-"`
	// Tree is the untyped decoded document the validator runs on.
	Tree map[string]any `json:"-"`
}

// Parse decodes a JSON inventory document. It does not validate the schema.
func Parse(data []byte) (*Document, error) {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, &SchemaValidationError{Problems: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}
	if tree == nil {
		return nil, &SchemaValidationError{Problems: []string{"document is empty"}}
	}

	doc := &Document{Raw: data, Tree: tree, Content: Content{}}
	doc.DeviceID, _ = tree["deviceid"].(string)
	doc.Action, _ = tree["action"].(string)
	doc.ItemType, _ = tree["itemtype"].(string)
	doc.Tag, _ = tree["tag"].(string)
	doc.Partial, _ = tree["partial"].(bool)
	if content, ok := tree["content"].(map[string]any); ok {
		for name, section := range content {
			doc.Content[name] = section
		}
	}
	if doc.ItemType == "" {
		doc.ItemType = DefaultItemType
	}
	return doc, nil
}

// Has reports whether the content carries the named section.
func (c Content) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Object returns an object section, or nil when absent or not an object.
func (c Content) Object(name string) map[string]any {
	obj, _ := c[name].(map[string]any)
	return obj
}

// List returns the object entries of a list section. Non-object entries are skipped.
// A single object where a list is expected is treated as a one-element list.
func (c Content) List(name string) []map[string]any {
	switch v := c[name].(type) {
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, entry := range v {
			if obj, ok := entry.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	case map[string]any:
		return []map[string]any{v}
	default:
		return nil
	}
}

// Names returns the section names in sorted order.
func (c Content) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
