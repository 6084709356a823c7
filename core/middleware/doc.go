// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation protecting the inventory and integrity endpoints.
//     Agents submit with the key in the X-API-Key header.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers so a submission can be
//     followed through the pipeline logs.
package middleware
