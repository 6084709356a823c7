package document

import (
	"fmt"
	"strings"
)

// SchemaValidationError reports a malformed or incompatible document.
type SchemaValidationError struct {
	Problems []string
}

func (e *SchemaValidationError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// UnsupportedSectionError reports a content section no normalizer handles.
type UnsupportedSectionError struct {
	Section string
}

func (e *UnsupportedSectionError) Error() string {
	return fmt.Sprintf("unsupported inventory section %q", e.Section)
}

// MetadataError reports missing device metadata.
type MetadataError struct {
	Field string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("missing required metadata: %s", e.Field)
}
