// Package document models a submitted inventory document: its metadata, its raw
// content sections and the structural schema checks run before processing.
package document
