// Package storage keeps attachment content in an S3-compatible bucket.
// Content is streamed end to end; nothing is staged on local disk.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound reports a key that is not in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions describes an upload. A Size of -1 means unknown length.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the bucket knows about a stored attachment.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// Storage holds attachment bodies keyed by <user>/<task>/<uuid><ext>.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)

	// Get streams the content. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete returns ErrObjectNotFound for a missing key.
	Delete(ctx context.Context, key string) error

	// PresignGet signs a download link. A non-empty filename becomes the
	// Content-Disposition name the browser saves under.
	PresignGet(ctx context.Context, key, filename string, expiry time.Duration) (string, error)
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
}
