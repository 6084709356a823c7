// Package loader registers features and mounts their routes on the fiber app.
//
// A feature implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers the inventory and integrity features with a
// Manager and calls LoadAll once middleware is in place. Disabled features are
// logged and skipped.
package loader
