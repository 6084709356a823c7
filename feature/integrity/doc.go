// Package integrity provides operational health checks.
//
// Unlike the 'inventory' package which reconciles submitted inventories,
// this package validates the infrastructure the inventory pipeline depends on.
//
// # Checks Provided
//
//   - Structure: Checks that the archive folders exist in the storage bucket.
//   - Dictionary: Verifies the USB and PCI id tables when they are loaded from the bucket.
//   - Server: Validates that the inventory tables match their GORM models (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/dictionary : Runs dictionary check.
//   - GET /integrity/server : Runs server schema check.
package integrity
