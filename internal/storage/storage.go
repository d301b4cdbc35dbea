package storage

import (
	"context"
	"fmt"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations. Training
// attachments (route files, photos) are uploaded by the client directly to
// the object store through presigned URLs; the API server never proxies the
// bytes.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT
	// requests for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error

	// DeletePrefix removes every object whose key starts with the given
	// prefix. Used to clean up a training's attachments after the record
	// itself is gone.
	DeletePrefix(ctx context.Context, prefix string) error
}

// AttachmentKey builds the object key for a training attachment.
func AttachmentKey(trainingID, filename string) string {
	return fmt.Sprintf("trainings/%s/%s", trainingID, filename)
}

// AttachmentPrefix is the common key prefix of all attachments belonging to
// one training record.
func AttachmentPrefix(trainingID string) string {
	return fmt.Sprintf("trainings/%s/", trainingID)
}
