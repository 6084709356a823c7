// Package inventory implements the inventory ingestion feature.
//
// Agents submit JSON inventories describing one device. Each submission is
// normalized into canonical records, matched to its owning item and reconciled
// against the stored records of that item (see the pipeline package).
//
// # Components
//
//   - Service: Runs submissions and registers unmanaged placeholder devices.
//   - Handler: Exposes the HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /inventory : Submit an inventory; `?dry_run=true` only computes plans.
//   - POST /inventory/unmanaged : Register a placeholder device by MAC addresses.
//   - GET /inventory/agents/:deviceid : Get the agent record of a device.
package inventory
