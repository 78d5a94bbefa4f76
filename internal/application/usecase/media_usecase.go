// internal/application/usecase/media_usecase.go
package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/domain/common"
	mediadom "storefront/internal/domain/media"
)

// MediaUsecase handles multimedia upload/browse/download against the blob
// store. Object names are timestamp + uuid + original extension so uploads
// never collide and sort roughly by time.
type MediaUsecase struct {
	blobs mediadom.BlobStore

	clock Clock
	newID func() string
}

func NewMediaUsecase(blobs mediadom.BlobStore) *MediaUsecase {
	return &MediaUsecase{
		blobs: blobs,
		clock: systemClock{},
		newID: uuid.NewString,
	}
}

// WithClock swaps the time source (tests).
func (uc *MediaUsecase) WithClock(c Clock) *MediaUsecase {
	uc.clock = c
	return uc
}

// Upload validates and stores one file, returning its stored metadata.
func (uc *MediaUsecase) Upload(ctx context.Context, data []byte, fileName, providedContentType, description string) (mediadom.FileInfo, error) {
	var zero mediadom.FileInfo

	if len(data) == 0 {
		return zero, fmt.Errorf("%w: file is empty", common.ErrValidation)
	}
	if len(data) > mediadom.MaxFileSize {
		return zero, fmt.Errorf("%w: file exceeds %d bytes", common.ErrValidation, mediadom.MaxFileSize)
	}

	fileName = strings.TrimSpace(fileName)
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		return zero, fmt.Errorf("%w: file name %q has no extension", common.ErrValidation, fileName)
	}

	now := uc.clock.Now()
	objectName := fmt.Sprintf("%s-%s%s", now.UTC().Format("20060102-150405"), uc.newID(), ext)

	if strings.TrimSpace(description) == "" {
		description = strings.TrimSuffix(fileName, path.Ext(fileName))
	}

	info := mediadom.FileInfo{
		FileName:    fileName,
		Description: strings.TrimSpace(description),
		ContentType: mediadom.ContentTypeFor(ext, providedContentType),
		FileSize:    int64(len(data)),
		FileType:    mediadom.CategoryFor(ext),
		UploadedAt:  now,
	}

	url, err := uc.blobs.Upload(ctx, data, objectName, info.ContentType, info)
	if err != nil {
		return zero, err
	}

	info.URL = url
	return info, nil
}

// Browse lists stored files, optionally narrowed to one category
// ("Image", "Video", ...). Empty or "All" returns everything.
func (uc *MediaUsecase) Browse(ctx context.Context, category string) ([]mediadom.FileInfo, error) {
	files, err := uc.blobs.List(ctx, "")
	if err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "All") {
		return files, nil
	}

	filtered := make([]mediadom.FileInfo, 0, len(files))
	for _, f := range files {
		if strings.EqualFold(f.FileType, category) {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}

// Download returns the bytes plus content type and original filename.
func (uc *MediaUsecase) Download(ctx context.Context, url string) ([]byte, string, string, error) {
	if strings.TrimSpace(url) == "" {
		return nil, "", "", fmt.Errorf("%w: url is empty", common.ErrValidation)
	}
	return uc.blobs.Download(ctx, url)
}

// GetInfo returns one file's metadata or common.ErrNotFound.
func (uc *MediaUsecase) GetInfo(ctx context.Context, url string) (mediadom.FileInfo, error) {
	if strings.TrimSpace(url) == "" {
		return mediadom.FileInfo{}, fmt.Errorf("%w: url is empty", common.ErrValidation)
	}
	return uc.blobs.GetInfo(ctx, url)
}

// Delete removes one file; deleting an absent file is not an error.
func (uc *MediaUsecase) Delete(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w: url is empty", common.ErrValidation)
	}
	return uc.blobs.Delete(ctx, url)
}
