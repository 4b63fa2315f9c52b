package main

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yassineraddaoui/Restaurant-Review/internal/blob"
	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

const maxPhotoSize = 10 << 20 // 10mb

func (app *application) uploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	// The stored name is server-generated; only the extension survives.
	name := uuid.New().String() + filepath.Ext(header.Filename)

	ref, err := app.blob.Store(r.Context(), file, name)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	photo := store.Photo{URL: ref, UploadDate: time.Now()}
	if err := app.jsonResponse(w, http.StatusCreated, photo); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getPhotoHandler(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "*")

	body, err := app.blob.Load(r.Context(), ref)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	defer body.Close()

	if ct := mime.TypeByExtension(filepath.Ext(ref)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if _, err := io.Copy(w, body); err != nil {
		app.logger.Errorw("streaming photo", "ref", ref, "error", err.Error())
	}
}
