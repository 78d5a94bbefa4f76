// internal/application/usecase/media_usecase_test.go
package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/common"
)

func newMediaFixture(t *testing.T) (*MediaUsecase, *fakeBlobStore) {
	t.Helper()
	blobs := newFakeBlobStore()
	uc := NewMediaUsecase(blobs).WithClock(fixedClock{time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)})
	uc.newID = sequentialIDs("blob")
	return uc, blobs
}

func TestMediaUpload(t *testing.T) {
	uc, _ := newMediaFixture(t)
	ctx := context.Background()

	info, err := uc.Upload(ctx, []byte("png bytes"), "Holiday Photo.PNG", "", "")
	require.NoError(t, err)

	assert.Equal(t, "image/png", info.ContentType, "type resolved from the extension")
	assert.Equal(t, "Image", info.FileType)
	assert.Equal(t, int64(9), info.FileSize)
	assert.Equal(t, "Holiday Photo", info.Description, "defaults to the filename without extension")
	assert.True(t, strings.HasPrefix(info.URL, "https://blobs.test/20260901-120000-blob-1"), info.URL)
	assert.True(t, strings.HasSuffix(info.URL, ".png"), "extension lowercased on the object name")
}

func TestMediaUploadValidation(t *testing.T) {
	uc, _ := newMediaFixture(t)
	ctx := context.Background()

	_, err := uc.Upload(ctx, nil, "a.png", "", "")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = uc.Upload(ctx, []byte("x"), "no-extension", "", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestMediaUploadUnknownExtensionFallsBack(t *testing.T) {
	uc, _ := newMediaFixture(t)

	info, err := uc.Upload(context.Background(), []byte("x"), "data.xyz", "application/x-custom", "raw dump")
	require.NoError(t, err)
	assert.Equal(t, "application/x-custom", info.ContentType, "client type wins for unknown extensions")
	assert.Equal(t, "Other", info.FileType)
	assert.Equal(t, "raw dump", info.Description)
}

func TestMediaBrowseByCategory(t *testing.T) {
	uc, _ := newMediaFixture(t)
	ctx := context.Background()

	_, err := uc.Upload(ctx, []byte("a"), "a.png", "", "")
	require.NoError(t, err)
	_, err = uc.Upload(ctx, []byte("b"), "b.mp4", "", "")
	require.NoError(t, err)
	_, err = uc.Upload(ctx, []byte("c"), "c.pdf", "", "")
	require.NoError(t, err)

	all, err := uc.Browse(ctx, "All")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	images, err := uc.Browse(ctx, "image")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "a.png", images[0].FileName)
}

func TestMediaDownloadRoundTrip(t *testing.T) {
	uc, _ := newMediaFixture(t)
	ctx := context.Background()

	info, err := uc.Upload(ctx, []byte("hello"), "note.txt", "", "")
	require.NoError(t, err)

	data, contentType, fileName, err := uc.Download(ctx, info.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, "note.txt", fileName)

	_, _, _, err = uc.Download(ctx, "https://blobs.test/absent.txt")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMediaDelete(t *testing.T) {
	uc, blobs := newMediaFixture(t)
	ctx := context.Background()

	info, err := uc.Upload(ctx, []byte("x"), "a.png", "", "")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, info.URL))
	assert.Contains(t, blobs.deleted, info.URL)

	_, err = uc.GetInfo(ctx, info.URL)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.Error(t, uc.Delete(ctx, "  "), "blank url rejected")
}
