package checks

import (
	"context"
	"errors"

	"inventory-manager/core/storage"
)

// CheckObjects returns the object keys missing from the bucket. It verifies the
// USB and PCI id tables when they are loaded from object storage.
func CheckObjects(ctx context.Context, client storage.Client, bucket string, keys []string) ([]string, error) {
	if err := requireBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	var missing []string
	for _, key := range keys {
		info, err := storage.Stat(ctx, client, bucket, key)
		switch {
		case errors.Is(err, storage.ErrObjectNotFound):
			missing = append(missing, key)
		case err != nil:
			return nil, err
		case info.Size == 0:
			// An empty id table parses to nothing.
			missing = append(missing, key)
		}
	}

	return missing, nil
}
