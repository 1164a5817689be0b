// Package storage contains file/object storage abstractions for processing artifacts.
// Two backends exist: a local directory tree and an S3-compatible bucket (MinIO).
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions define optional parameters for storing objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
// ContentType and Metadata are optional and ignored by the local backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the artifact store used for uploads and processed results.
// Keys are slash separated, e.g. "uploads/20260101000000_ab12cd34_photo.png".
type Storage interface {
	// Put stores an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Sweep removes objects under prefix last modified before cutoff and
	// reports how many were removed. Objects that cannot be removed are skipped.
	Sweep(ctx context.Context, prefix string, cutoff time.Time) (int, error)
}
