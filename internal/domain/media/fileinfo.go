// internal/domain/media/fileinfo.go
package media

import (
	"path"
	"strings"
	"time"
)

// File categories as shown on the media browse screens.
const (
	CategoryImage    = "Image"
	CategoryVideo    = "Video"
	CategoryAudio    = "Audio"
	CategoryDocument = "Document"
	CategoryOther    = "Other"
	CategoryUnknown  = "Unknown"
)

// MaxFileSize is the upload cap for multimedia files (50MB).
const MaxFileSize = 50 * 1024 * 1024

// FileInfo is blob metadata as stored on the object.
type FileInfo struct {
	URL          string    `json:"url"`
	FileName     string    `json:"fileName"`
	Description  string    `json:"description"`
	ContentType  string    `json:"contentType"`
	FileSize     int64     `json:"fileSize"`
	FileType     string    `json:"fileType"`
	UploadedAt   time.Time `json:"uploadedAt"`
	LastModified time.Time `json:"lastModified"`
}

// DisplayName prefers the description over the bare filename.
func (f FileInfo) DisplayName() string {
	if d := strings.TrimSpace(f.Description); d != "" {
		return d
	}
	if n := strings.TrimSpace(f.FileName); n != "" {
		ext := path.Ext(n)
		return strings.TrimSuffix(n, ext)
	}
	return "Unnamed File"
}

// mimeTypes maps lowercase extensions to MIME types for the supported
// multimedia formats.
var mimeTypes = map[string]string{
	// Image formats
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".tiff": "image/tiff",
	".ico":  "image/x-icon",

	// Video formats
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".m4v":  "video/x-m4v",
	".3gp":  "video/3gpp",

	// Audio formats
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".wma":  "audio/x-ms-wma",
	".m4a":  "audio/mp4",

	// Document formats
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var categoryExtensions = map[string][]string{
	CategoryImage:    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".svg", ".tiff", ".ico"},
	CategoryVideo:    {".mp4", ".avi", ".mov", ".wmv", ".flv", ".webm", ".mkv", ".m4v", ".3gp"},
	CategoryAudio:    {".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a"},
	CategoryDocument: {".pdf", ".txt", ".doc", ".docx"},
}

// ContentTypeFor resolves a content type for an extension.
// Falls back to the client-provided type, then application/octet-stream.
func ContentTypeFor(ext, provided string) string {
	if mt, ok := mimeTypes[strings.ToLower(strings.TrimSpace(ext))]; ok {
		return mt
	}
	if p := strings.TrimSpace(provided); p != "" {
		return p
	}
	return "application/octet-stream"
}

// CategoryFor classifies a file by extension.
func CategoryFor(ext string) string {
	e := strings.ToLower(strings.TrimSpace(ext))
	if e == "" {
		return CategoryUnknown
	}
	for cat, exts := range categoryExtensions {
		for _, x := range exts {
			if e == x {
				return cat
			}
		}
	}
	return CategoryOther
}
