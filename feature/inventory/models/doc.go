// Package models defines the canonical inventory records produced by normalizers
// and the gorm rows they are persisted in.
//
// Canonical records are plain structs; comparison and merging are driven by their
// `json` tags, and fields tagged `cmp:"-"` are excluded from comparison.
package models
