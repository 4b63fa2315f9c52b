package main

import "net/http"

func (app *application) listCuisinesHandler(w http.ResponseWriter, r *http.Request) {
	cuisines, err := app.store.Restaurants.DistinctCuisines(r.Context())
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cuisines); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listFeatureNamesHandler(w http.ResponseWriter, r *http.Request) {
	features, err := app.store.Features.List(r.Context())
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	names := make([]string, 0, len(features))
	for _, feature := range features {
		names = append(names, feature.Name)
	}

	if err := app.jsonResponse(w, http.StatusOK, names); err != nil {
		app.internalServerError(w, r, err)
	}
}
