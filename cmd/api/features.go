package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

type FeaturePayload struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (app *application) createFeatureHandler(w http.ResponseWriter, r *http.Request) {
	var payload FeaturePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	feature := &store.Feature{Name: payload.Name}
	if err := app.store.Features.Create(r.Context(), feature); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, feature); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getFeatureHandler(w http.ResponseWriter, r *http.Request) {
	feature, err := app.store.Features.GetByID(r.Context(), chi.URLParam(r, "featureID"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, feature); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listFeaturesHandler(w http.ResponseWriter, r *http.Request) {
	features, err := app.store.Features.List(r.Context())
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, features); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateFeatureHandler(w http.ResponseWriter, r *http.Request) {
	var payload FeaturePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Features.Update(r.Context(), chi.URLParam(r, "featureID"), payload.Name); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) deleteFeatureHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Features.Delete(r.Context(), chi.URLParam(r, "featureID")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
