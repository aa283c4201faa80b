package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AddImage accepts a multipart "image" field and attaches it to the article.
func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	articleID, ok := pathID(r, "articleId")
	if !ok {
		WriteError(w, "invalid article id", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	if err := r.ParseMultipartForm(h.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			WriteError(w, fmt.Sprintf("file too large (max %d MB)", h.MaxUploadSize/(1024*1024)), http.StatusRequestEntityTooLarge)
		} else {
			WriteError(w, "could not read multipart form", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "image field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		WriteError(w, "unsupported file type, allowed: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	image, err := h.ImageService.AddImage(r.Context(), articleID, userID, header.Filename, file, header.Size)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, image, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	articleID, ok := pathID(r, "articleId")
	if !ok {
		WriteError(w, "invalid article id", http.StatusBadRequest)
		return
	}

	imageID := mux.Vars(r)["imageId"]
	if imageID == "" {
		WriteError(w, "invalid image id", http.StatusBadRequest)
		return
	}

	if err := h.ImageService.DeleteImage(r.Context(), articleID, imageID, userID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
