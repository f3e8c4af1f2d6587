package storage

import (
	"context"
	"io"
)

// UploadResult identifies a stored asset.
type UploadResult struct {
	PublicID string
	URL      string
}

// Uploader stores binary assets with an external object store.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, contentType string) (*UploadResult, error)
}
