// Package asset turns the raw sections of an inventory document into canonical
// records, one normalizer per category.
//
// The computer normalizer always runs and yields the owning item. The others run
// only when one of their sections is present; a section claimed by no normalizer
// fails the dispatch with *document.UnsupportedSectionError.
package asset
