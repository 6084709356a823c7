// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for common operations
// like checking bucket existence, uploading files, and listing objects. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// The inventory pipeline uses it to archive submitted documents and to fetch the
// USB and PCI id tables; the integrity feature uses it to verify the bucket.
//
// The Client interface is mocked in core/storage/mocks for unit tests.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "inventory")
package storage
