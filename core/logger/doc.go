// Package logger builds the zap logger used across the service.
//
// Level "debug" selects zap's development config; any other level selects the
// production config at that level. Format "console" switches to colored console
// encoding, otherwise entries are JSON. Every entry carries the configured
// service name.
//
// WithRayID attaches the request's ray_id to a logger inside fiber handlers, so
// an inventory submission can be followed from the HTTP request to its pipeline
// run (which logs run_id and device_id).
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	l := logger.WithRayID(log, c)
//	l.Error("Submit failed", zap.Error(err))
package logger
