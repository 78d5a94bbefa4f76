// internal/adapters/out/gcs/media_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"storefront/internal/domain/common"
	mediadom "storefront/internal/domain/media"
)

// Object metadata keys.
const (
	metaOriginalFileName = "originalFileName"
	metaDescription      = "description"
	metaFileType         = "fileType"
	metaFileSize         = "fileSize"
	metaUploadedAt       = "uploadedAt"
)

// MediaRepositoryGCS implements media.BlobStore on a single GCS bucket.
//
// ✅ Layout (single bucket):
// - objectName: <yyyyMMdd-HHmmss>-<uuid><ext>（アップロード時刻で整理しやすくする）
//
// Public access:
//   - If the bucket has IAM "allUsers: Storage Object Viewer" (uniform access),
//     uploaded objects become publicly readable without per-object ACL changes.
type MediaRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewMediaRepositoryGCS(client *storage.Client, bucket string) *MediaRepositoryGCS {
	return &MediaRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

func (r *MediaRepositoryGCS) bucket() (*storage.BucketHandle, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("media_repository_gcs: storage client is nil")
	}
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return nil, errors.New("media_repository_gcs: bucket is empty")
	}
	return r.Client.Bucket(b), nil
}

// Upload stores the bytes and returns the public object URL.
// objectName は呼び出し側が組み立てた名前をそのまま使う。
func (r *MediaRepositoryGCS) Upload(ctx context.Context, data []byte, objectName, contentType string, info mediadom.FileInfo) (string, error) {
	bh, err := r.bucket()
	if err != nil {
		return "", err
	}

	obj := strings.TrimSpace(objectName)
	if obj == "" {
		return "", fmt.Errorf("%w: object name is empty", common.ErrValidation)
	}

	w := bh.Object(obj).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	// 1 year cache for multimedia
	w.CacheControl = "public, max-age=31536000"
	// data is already in memory; single-request upload
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		metaOriginalFileName: info.FileName,
		metaDescription:      info.Description,
		metaFileType:         info.FileType,
		metaFileSize:         strconv.FormatInt(info.FileSize, 10),
		metaUploadedAt:       info.UploadedAt.UTC().Format(time.RFC3339),
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", mapBlobErr(err)
	}
	if err := w.Close(); err != nil {
		return "", mapBlobErr(err)
	}

	return r.publicURL(obj), nil
}

func (r *MediaRepositoryGCS) Download(ctx context.Context, blobURL string) ([]byte, string, string, error) {
	bh, err := r.bucket()
	if err != nil {
		return nil, "", "", err
	}

	obj, err := r.objectFromURL(blobURL)
	if err != nil {
		return nil, "", "", err
	}

	oh := bh.Object(obj)

	attrs, err := oh.Attrs(ctx)
	if err != nil {
		return nil, "", "", mapBlobErr(err)
	}

	rd, err := oh.NewReader(ctx)
	if err != nil {
		return nil, "", "", mapBlobErr(err)
	}
	defer rd.Close()

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, "", "", mapBlobErr(err)
	}

	fileName := obj
	if attrs.Metadata != nil {
		if n := strings.TrimSpace(attrs.Metadata[metaOriginalFileName]); n != "" {
			fileName = n
		}
	}

	return data, attrs.ContentType, fileName, nil
}

func (r *MediaRepositoryGCS) Delete(ctx context.Context, blobURL string) error {
	if strings.TrimSpace(blobURL) == "" {
		return nil
	}

	bh, err := r.bucket()
	if err != nil {
		return err
	}

	obj, err := r.objectFromURL(blobURL)
	if err != nil {
		return err
	}

	if err := bh.Object(obj).Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
		return mapBlobErr(err)
	}
	return nil
}

func (r *MediaRepositoryGCS) GetInfo(ctx context.Context, blobURL string) (mediadom.FileInfo, error) {
	bh, err := r.bucket()
	if err != nil {
		return mediadom.FileInfo{}, err
	}

	obj, err := r.objectFromURL(blobURL)
	if err != nil {
		return mediadom.FileInfo{}, err
	}

	attrs, err := bh.Object(obj).Attrs(ctx)
	if err != nil {
		return mediadom.FileInfo{}, mapBlobErr(err)
	}

	return r.infoFromAttrs(obj, attrs.ContentType, attrs.Size, attrs.Updated, attrs.Metadata), nil
}

func (r *MediaRepositoryGCS) List(ctx context.Context, prefix string) ([]mediadom.FileInfo, error) {
	bh, err := r.bucket()
	if err != nil {
		return nil, err
	}

	it := bh.Objects(ctx, &storage.Query{
		Prefix: strings.TrimSpace(prefix),
	})

	var out []mediadom.FileInfo
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapBlobErr(err)
		}
		if attrs == nil || strings.TrimSpace(attrs.Name) == "" {
			continue
		}
		out = append(out, r.infoFromAttrs(attrs.Name, attrs.ContentType, attrs.Size, attrs.Updated, attrs.Metadata))
	}
	return out, nil
}

// -----------------------------------------
// helpers
// -----------------------------------------

func (r *MediaRepositoryGCS) infoFromAttrs(objectName, contentType string, size int64, updated time.Time, md map[string]string) mediadom.FileInfo {
	info := mediadom.FileInfo{
		URL:          r.publicURL(objectName),
		FileName:     objectName,
		ContentType:  contentType,
		FileSize:     size,
		FileType:     mediadom.CategoryFor(path.Ext(objectName)),
		LastModified: updated,
	}

	if md == nil {
		return info
	}
	if n := strings.TrimSpace(md[metaOriginalFileName]); n != "" {
		info.FileName = n
	}
	if d := strings.TrimSpace(md[metaDescription]); d != "" {
		info.Description = d
	}
	if ft := strings.TrimSpace(md[metaFileType]); ft != "" {
		info.FileType = ft
	}
	if sz := strings.TrimSpace(md[metaFileSize]); sz != "" {
		if n, err := strconv.ParseInt(sz, 10, 64); err == nil {
			info.FileSize = n
		}
	}
	if up := strings.TrimSpace(md[metaUploadedAt]); up != "" {
		if t, err := time.Parse(time.RFC3339, up); err == nil {
			info.UploadedAt = t
		}
	}
	return info
}

// publicURL builds a public GCS URL (path segments escaped, "/" kept).
func (r *MediaRepositoryGCS) publicURL(objectName string) string {
	base := strings.TrimSpace(r.PublicBaseURL)
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	parts := strings.Split(strings.TrimLeft(objectName, "/"), "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), strings.TrimSpace(r.Bucket), strings.Join(parts, "/"))
}

// objectFromURL parses a GCS-like URL back to the object name.
// 対応例:
//   - https://storage.googleapis.com/<bucket>/<object>
//   - https://storage.cloud.google.com/<bucket>/<object>
func (r *MediaRepositoryGCS) objectFromURL(u string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return "", fmt.Errorf("%w: invalid blob url %q", common.ErrValidation, u)
	}

	host := strings.ToLower(parsed.Host)
	if host != "storage.googleapis.com" && host != "storage.cloud.google.com" {
		return "", fmt.Errorf("%w: unsupported blob url host %q", common.ErrValidation, parsed.Host)
	}

	p := strings.TrimLeft(parsed.EscapedPath(), "/")
	parts := strings.SplitN(p, "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("%w: blob url has no object path", common.ErrValidation)
	}

	obj, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: invalid blob url encoding", common.ErrValidation)
	}
	return obj, nil
}

func mapBlobErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("%w: %v", common.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
}
