// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures for server settings such as the listen port,
// the API key and the request body limit for submitted inventory documents.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command to build the Fiber application.
package server
