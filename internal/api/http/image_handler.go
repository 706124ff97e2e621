package http

import (
	"errors"
	"io"
	"net/http"

	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/storage"

	"github.com/gorilla/mux"
)

// GetImage streams a stored product image.
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	file, err := h.images.ReadFile(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			writeError(w, http.StatusNotFound, MsgNotFound)
			return
		}
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", storage.ContentTypeFor(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Image stream interrupted", "key", key, "error", err)
	}
}
