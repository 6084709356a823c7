// Package metrics declares the Prometheus collectors of the inventory pipeline
// and a Fiber handler exposing them.
package metrics
