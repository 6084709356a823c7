package document

import (
	"fmt"
	"sort"
)

// Shape is the JSON kind a known section must have.
type Shape int

const (
	ShapeObject Shape = iota
	ShapeList
	ShapeString
)

func (s Shape) String() string {
	switch s {
	case ShapeObject:
		return "object"
	case ShapeList:
		return "array"
	default:
		return "string"
	}
}

// TopLevelKeys are the keys accepted at the root of a document.
var TopLevelKeys = map[string]Shape{
	"deviceid": ShapeString,
	"action":   ShapeString,
	"itemtype": ShapeString,
	"tag":      ShapeString,
	"jobid":    ShapeString,
	"content":  ShapeObject,
}

// SectionShapes lists every content section of the inventory format.
var SectionShapes = map[string]Shape{
	"versionclient":      ShapeString,
	"versionprovider":    ShapeObject,
	"hardware":           ShapeObject,
	"bios":               ShapeObject,
	"operatingsystem":    ShapeObject,
	"accesslog":          ShapeObject,
	"accountinfo":        ShapeList,
	"antivirus":          ShapeList,
	"batteries":          ShapeList,
	"cameras":            ShapeList,
	"controllers":        ShapeList,
	"cpus":               ShapeList,
	"databases_services": ShapeList,
	"drives":             ShapeList,
	"envs":               ShapeList,
	"firmwares":          ShapeList,
	"inputs":             ShapeList,
	"licenseinfos":       ShapeList,
	"local_groups":       ShapeList,
	"local_users":        ShapeList,
	"logical_volumes":    ShapeList,
	"memories":           ShapeList,
	"monitors":           ShapeList,
	"networks":           ShapeList,
	"physical_volumes":   ShapeList,
	"ports":              ShapeList,
	"powersupplies":      ShapeList,
	"printers":           ShapeList,
	"processes":          ShapeList,
	"remote_mgmt":        ShapeList,
	"sensors":            ShapeList,
	"simcards":           ShapeList,
	"slots":              ShapeList,
	"softwares":          ShapeList,
	"sounds":             ShapeList,
	"storages":           ShapeList,
	"usbdevices":         ShapeList,
	"users":              ShapeList,
	"videos":             ShapeList,
	"virtualmachines":    ShapeList,
	"volume_groups":      ShapeList,
}

// Validator checks a decoded document tree before any processing.
type Validator interface {
	Validate(doc *Document) error
}

// SchemaValidator enforces the structural contract of the inventory format.
// Unknown top-level keys are rejected. Known content sections must have their
// declared shape; unknown content sections are left to dispatch.
type SchemaValidator struct{}

// NewSchemaValidator returns the default validator.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

// Validate returns a *SchemaValidationError listing every problem found.
func (v *SchemaValidator) Validate(doc *Document) error {
	if doc == nil || doc.Tree == nil {
		return &SchemaValidationError{Problems: []string{"document is empty"}}
	}

	var problems []string

	keys := make([]string, 0, len(doc.Tree))
	for key := range doc.Tree {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := doc.Tree[key]
		if key == "partial" {
			if _, ok := value.(bool); !ok {
				problems = append(problems, "partial must be a boolean")
			}
			continue
		}
		shape, known := TopLevelKeys[key]
		if !known {
			problems = append(problems, fmt.Sprintf("unknown top-level key %q", key))
			continue
		}
		if !hasShape(value, shape) {
			problems = append(problems, fmt.Sprintf("%s must be a %s", key, shape))
		}
	}

	content, ok := doc.Tree["content"].(map[string]any)
	if !ok {
		if _, present := doc.Tree["content"]; !present {
			problems = append(problems, "content is required")
		}
	} else {
		names := make([]string, 0, len(content))
		for name := range content {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			shape, known := SectionShapes[name]
			if !known {
				continue
			}
			if !hasShape(content[name], shape) {
				problems = append(problems, fmt.Sprintf("content.%s must be a %s", name, shape))
			}
		}
	}

	if len(problems) > 0 {
		return &SchemaValidationError{Problems: problems}
	}
	return nil
}

func hasShape(value any, shape Shape) bool {
	switch shape {
	case ShapeObject:
		_, ok := value.(map[string]any)
		return ok
	case ShapeList:
		list, ok := value.([]any)
		if !ok {
			return false
		}
		for _, entry := range list {
			if _, ok := entry.(map[string]any); !ok {
				return false
			}
		}
		return true
	default:
		_, ok := value.(string)
		return ok
	}
}
