package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"

	"scriptureCircle/errs"
)

const readTimeout = 30 * time.Second

// Bucket reads small objects from a single GCS bucket.
type Bucket struct {
	client *storage.Client
	name   string
}

func CreateStorage(ctx context.Context) (*storage.Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return client, nil
}

func NewBucket(client *storage.Client, name string) *Bucket {
	return &Bucket{client: client, name: name}
}

// Read returns the object's contents, or errs.ErrNotFound when it does not exist.
func (b *Bucket) Read(ctx context.Context, objectName string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	rc, err := b.client.Bucket(b.name).Object(objectName).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("object %q %w", objectName, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Object(%q).NewReader: %w", objectName, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}
	slog.Debug("Blob read successfully", "bucket", b.name, "objectName", objectName, "bytes", len(data))
	return data, nil
}
