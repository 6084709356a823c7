package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"inventory-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

const (
	DriverFile   = "file"
	DriverObject = "object"
	DriverNone   = "none"
)

// Archiver keeps the raw submitted document of the last successful inventory
// of each item, for audit and replay.
type Archiver interface {
	Archive(ctx context.Context, itemType string, itemID uint, raw []byte) (string, error)
}

// RelativePath is the per-item location of an archived document.
func RelativePath(itemType string, itemID uint) string {
	return path.Join(itemType, strconv.FormatUint(uint64(itemID), 10)+".json")
}

// FileArchiver writes documents under a directory.
type FileArchiver struct {
	Dir string
}

func (a *FileArchiver) Archive(_ context.Context, itemType string, itemID uint, raw []byte) (string, error) {
	target := filepath.Join(a.Dir, filepath.FromSlash(RelativePath(itemType, itemID)))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	// Write then rename so readers never see a partial document.
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return "", fmt.Errorf("failed to move archive into place: %w", err)
	}
	return target, nil
}

// ObjectArchiver uploads documents to an object storage bucket.
type ObjectArchiver struct {
	Client storage.Client
	Bucket string
	Prefix string
}

func (a *ObjectArchiver) Archive(ctx context.Context, itemType string, itemID uint, raw []byte) (string, error) {
	object := path.Join(a.Prefix, RelativePath(itemType, itemID))
	_, err := a.Client.PutObject(ctx, a.Bucket, object, bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload archive %s: %w", object, err)
	}
	return object, nil
}

// Discard drops documents.
type Discard struct{}

func (Discard) Archive(context.Context, string, uint, []byte) (string, error) {
	return "", nil
}

// New selects an archiver by driver name.
func New(driver, dir string, client storage.Client, bucket, prefix string) (Archiver, error) {
	switch driver {
	case DriverFile, "":
		if dir == "" {
			return nil, fmt.Errorf("file archive requires a directory")
		}
		return &FileArchiver{Dir: dir}, nil
	case DriverObject:
		if client == nil {
			return nil, fmt.Errorf("object archive requires a storage client")
		}
		return &ObjectArchiver{Client: client, Bucket: bucket, Prefix: prefix}, nil
	case DriverNone:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown archive driver %q", driver)
	}
}
