// internal/domain/media/repository_port.go
package media

import "context"

// BlobStore is the object-storage port for multimedia files.
// Objects are addressed by their public URL.
type BlobStore interface {
	// Upload stores the bytes under objectName and returns the object's URL.
	// Metadata (original filename, description, category, size, upload time)
	// comes from info and is attached to the object.
	Upload(ctx context.Context, data []byte, objectName, contentType string, info FileInfo) (string, error)

	// Download returns the bytes plus content type and original filename.
	// common.ErrNotFound when the object does not exist.
	Download(ctx context.Context, url string) ([]byte, string, string, error)

	// Delete removes the object; deleting an absent object is not an error.
	Delete(ctx context.Context, url string) error

	// GetInfo returns the object's metadata or common.ErrNotFound.
	GetInfo(ctx context.Context, url string) (FileInfo, error)

	// List returns metadata for objects under the optional name prefix.
	List(ctx context.Context, prefix string) ([]FileInfo, error)
}
