package httpapi

import (
	"errors"
	"net/http"

	"github.com/Joao-ahah/centro-artesanato-api/internal/upload"
)

type UploadHandler struct {
	store *upload.DiskStore
}

func NewUploadHandler(store *upload.DiskStore) *UploadHandler {
	return &UploadHandler{store: store}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	path, err := h.store.SaveImage(header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrUnsupportedType):
			writeError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		case errors.Is(err, upload.ErrFileTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		default:
			writeError(w, http.StatusInternalServerError, "failed to store file")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}
