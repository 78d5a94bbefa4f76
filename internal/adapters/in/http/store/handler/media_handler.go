// internal/adapters/in/http/store/handler/media_handler.go
package storeHandler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"storefront/internal/application/usecase"
	mediadom "storefront/internal/domain/media"
)

// MediaHandler serves the multimedia library.
// - POST   /store/media              multipart: file, description
// - GET    /store/media?category=    list (Image / Video / Audio / Document / Other / All)
// - GET    /store/media/file?url=    raw bytes with original filename
// - GET    /store/media/info?url=
// - DELETE /store/media?url=
type MediaHandler struct {
	uc *usecase.MediaUsecase
}

func NewMediaHandler(uc *usecase.MediaUsecase) http.Handler {
	return &MediaHandler{uc: uc}
}

func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if tail, ok := pathTail(r, "/store/media/file"); ok && tail == "" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.download(w, r)
		return
	}

	if tail, ok := pathTail(r, "/store/media/info"); ok && tail == "" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.info(w, r)
		return
	}

	if tail, ok := pathTail(r, "/store/media"); ok && tail == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.upload(w, r)
		case http.MethodDelete:
			h.delete(w, r)
		default:
			methodNotAllowed(w)
		}
		return
	}

	notFound(w)
}

func (h *MediaHandler) upload(w http.ResponseWriter, r *http.Request) {
	// multipart header + body; cap matches domain limit with form overhead
	if err := r.ParseMultipartForm(mediadom.MaxFileSize + 1<<20); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeFail(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, mediadom.MaxFileSize+1))
	if err != nil {
		writeFail(w, http.StatusBadRequest, "failed to read file")
		return
	}

	info, err := h.uc.Upload(
		r.Context(),
		data,
		header.Filename,
		header.Header.Get("Content-Type"),
		r.FormValue("description"),
	)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusCreated, "file uploaded", map[string]any{"file": info})
}

func (h *MediaHandler) list(w http.ResponseWriter, r *http.Request) {
	files, err := h.uc.Browse(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if files == nil {
		files = []mediadom.FileInfo{}
	}
	writeOK(w, http.StatusOK, "ok", map[string]any{"files": files})
}

func (h *MediaHandler) download(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	data, contentType, fileName, err := h.uc.Download(r.Context(), url)
	if err != nil {
		writeErr(w, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if fileName != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *MediaHandler) info(w http.ResponseWriter, r *http.Request) {
	info, err := h.uc.GetInfo(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "ok", map[string]any{"file": info})
}

func (h *MediaHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Delete(r.Context(), r.URL.Query().Get("url")); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, http.StatusOK, "file deleted", nil)
}
