package dictionary

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"inventory-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

//go:embed data/usb.ids
var embeddedUSB []byte

//go:embed data/pci.ids
var embeddedPCI []byte

// FileSource reads an id table from the local file system.
type FileSource struct {
	Path string
}

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

func (s FileSource) String() string { return "file:" + s.Path }

// ObjectSource reads an id table from object storage.
type ObjectSource struct {
	Client storage.Client
	Bucket string
	Object string
}

func (s ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return s.Client.GetObject(ctx, s.Bucket, s.Object, minio.GetObjectOptions{})
}

func (s ObjectSource) String() string { return fmt.Sprintf("object:%s/%s", s.Bucket, s.Object) }

// BytesSource serves an in-memory id table.
type BytesSource struct {
	Name string
	Data []byte
}

func (s BytesSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}

func (s BytesSource) String() string { return "embedded:" + s.Name }

// EmbeddedUSB returns the built-in USB id table.
func EmbeddedUSB() Source { return BytesSource{Name: "usb.ids", Data: embeddedUSB} }

// EmbeddedPCI returns the built-in PCI id table.
func EmbeddedPCI() Source { return BytesSource{Name: "pci.ids", Data: embeddedPCI} }
