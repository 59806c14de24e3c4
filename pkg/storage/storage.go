package storage

import (
	"context"
	"errors"
	"io"
)

const (
	// MaxUploadSize bounds presigned uploads.
	MaxUploadSize = 100 * 1024 * 1024
)

var ErrObjectNotFound = errors.New("object not found")

// PresignedPost is what a browser needs to upload straight to the bucket.
type PresignedPost struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

type ObjectStorage interface {
	Store(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	// Delete succeeds when the object is already gone.
	Delete(ctx context.Context, key string) error
	URLFor(key string) string
	PresignedUpload(ctx context.Context, key, contentType string) (*PresignedPost, error)
}
